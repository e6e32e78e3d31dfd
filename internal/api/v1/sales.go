package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"salestrack/internal/auth"
	"salestrack/internal/domain"
	"salestrack/internal/store"

	"github.com/go-chi/chi/v5"
)

type saleRequest struct {
	Date            string `json:"date"`
	Offer           string `json:"offer"`
	Name            string `json:"name"`
	OrderNumber     string `json:"orderNumber"`
	OrderStatus     string `json:"orderStatus"`
	ClientFirstName string `json:"clientFirstName"`
	ClientLastName  string `json:"clientLastName"`
	ClientPhone     string `json:"clientPhone"`
}

func (h *Handler) saleInput(req saleRequest, claims auth.Claims) (store.SaleInput, error) {
	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.ParseInLocation(time.RFC3339, req.Date, h.zone)
		if err != nil {
			date, err = time.ParseInLocation("2006-01-02 15:04:05", req.Date, h.zone)
		}
		if err != nil {
			return store.SaleInput{}, fmt.Errorf("invalid date %q", req.Date)
		}
	}
	return store.SaleInput{
		Date:            date,
		Offer:           req.Offer,
		Name:            req.Name,
		OrderNumber:     req.OrderNumber,
		OrderStatus:     domain.OrderStatus(req.OrderStatus),
		UserID:          claims.UserID,
		ClientFirstName: req.ClientFirstName,
		ClientLastName:  req.ClientLastName,
		ClientPhone:     req.ClientPhone,
	}, nil
}

func (h *Handler) salesFilter(r *http.Request) (store.SalesFilter, error) {
	from, to, err := parseRangeQuery(r, h.zone)
	if err != nil {
		return store.SalesFilter{}, err
	}
	query := r.URL.Query()
	return store.SalesFilter{
		Offers:   splitCSVQuery(query.Get("offer")),
		Sellers:  splitCSVQuery(query.Get("seller")),
		Statuses: parseStatuses(query.Get("status")),
		From:     from,
		To:       to,
		UserID:   query.Get("userId"),
		Limit:    parseIntQuery(r, "limit", 0),
	}, nil
}

func (h *Handler) handleListSales(w http.ResponseWriter, r *http.Request) {
	filter, err := h.salesFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	sales, err := h.service.ListSales(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load sales", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": sales})
}

func (h *Handler) handleGetSale(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "saleID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid sale id", nil)
		return
	}
	sale, err := h.service.GetSale(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "sale not found")
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (h *Handler) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	input, err := h.saleInput(req, auth.FromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	id, err := h.service.CreateSale(r.Context(), input)
	if err != nil {
		writeServiceError(w, err, "sale not found")
		return
	}
	sale, err := h.service.GetSale(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "sale not found")
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

func (h *Handler) handleUpdateSale(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "saleID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid sale id", nil)
		return
	}
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	input, err := h.saleInput(req, auth.FromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if err := h.service.UpdateSale(r.Context(), id, input); err != nil {
		writeServiceError(w, err, "sale not found")
		return
	}
	sale, err := h.service.GetSale(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "sale not found")
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (h *Handler) handleDeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "saleID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid sale id", nil)
		return
	}
	if err := h.service.DeleteSale(r.Context(), id); err != nil {
		writeServiceError(w, err, "sale not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.service.ListSellers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load sellers", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": sellers})
}

func (h *Handler) handleTopSellers(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRangeQuery(r, h.zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	if from.IsZero() || to.IsZero() {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "from and to are required", nil)
		return
	}
	top, err := h.service.TopSellers(r.Context(), from, to, parseIntQuery(r, "limit", 5))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to load top sellers", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": top})
}

type bulkStatusRequest struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Statuses []string `json:"statuses"`
	NewValue string   `json:"newValue"`
}

func (h *Handler) handleBulkStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	from, err := time.ParseInLocation("2006-01-02", req.From, h.zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid from: expected YYYY-MM-DD", nil)
		return
	}
	to, err := time.ParseInLocation("2006-01-02", req.To, h.zone)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid to: expected YYYY-MM-DD", nil)
		return
	}
	to = to.Add(24*time.Hour - time.Nanosecond)

	statuses := make([]domain.OrderStatus, 0, len(req.Statuses))
	for _, s := range req.Statuses {
		statuses = append(statuses, domain.OrderStatus(s))
	}
	updated, err := h.service.BulkUpdateStatus(r.Context(), from, to, statuses, domain.OrderStatus(req.NewValue))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to update statuses", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": updated})
}

func (h *Handler) handleExportSales(w http.ResponseWriter, r *http.Request) {
	filter, err := h.salesFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	csv, err := h.service.ExportSales(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to export sales", nil)
		return
	}
	filename := fmt.Sprintf("ventes-%s.csv", time.Now().In(h.zone).Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(csv))
}

func (h *Handler) handleImportSales(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "expected multipart form with a file field", nil)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "missing file field", nil)
		return
	}
	defer file.Close()

	claims := auth.FromContext(r.Context())
	report, err := h.service.ImportSales(r.Context(), file, claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "import failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleListOffers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": domain.Offers})
}
