// Package v1 exposes the dashboard's JSON API.
package v1

import (
	"net/http"
	"time"

	"salestrack/internal/auth"
	"salestrack/internal/service"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *service.Service
	zone    *time.Location
}

const maxImportBytes = 10 << 20

func NewHandler(service *service.Service, zone *time.Location) *Handler {
	if zone == nil {
		zone = time.UTC
	}
	return &Handler{service: service, zone: zone}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/objectives", h.handleListObjectives)
	r.Get("/objectives/progress", h.handleActiveProgress)
	r.Get("/objectives/{objectiveID}", h.handleGetObjective)
	r.Get("/objectives/{objectiveID}/progress", h.handleObjectiveProgress)

	r.Get("/sales", h.handleListSales)
	r.Get("/sales/sellers", h.handleListSellers)
	r.Get("/sales/top-sellers", h.handleTopSellers)
	r.Get("/sales/export", h.handleExportSales)
	r.Get("/sales/{saleID}", h.handleGetSale)
	r.Post("/sales", h.handleCreateSale)
	r.Put("/sales/{saleID}", h.handleUpdateSale)

	r.Get("/contacts-argued", h.handleListContactsArgued)
	r.Get("/contacts-argued/{date}", h.handleGetContactsArgued)
	r.Put("/contacts-argued", h.handleUpsertContactsArgued)

	r.Get("/leads/sales", h.handleListLeadsSales)
	r.Post("/leads/sales", h.handleCreateLeadsSale)
	r.Get("/leads/breakdown", h.handleLeadsBreakdown)
	r.Get("/leads/orders", h.handleListLeadsOrders)

	r.Get("/offers", h.handleListOffers)
	r.Get("/periods/weeks", h.handleWeeksOfMonth)
	r.Get("/reports/recap", h.handleGetRecap)

	// Admin-only management surface.
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)

		r.Post("/objectives", h.handleCreateObjective)
		r.Put("/objectives/{objectiveID}", h.handleUpdateObjective)
		r.Post("/objectives/{objectiveID}/activate", h.handleActivateObjective)
		r.Delete("/objectives/{objectiveID}", h.handleDeleteObjective)

		r.Delete("/sales/{saleID}", h.handleDeleteSale)
		r.Post("/sales/bulk-status", h.handleBulkStatus)
		r.Post("/sales/import", h.handleImportSales)

		r.Post("/leads/orders", h.handleCreateLeadsOrder)

		r.Get("/recipients", h.handleListRecipients)
		r.Post("/recipients", h.handleAddRecipient)
		r.Delete("/recipients/{recipientID}", h.handleDeleteRecipient)

		r.Post("/reports/recap/send", h.handleSendRecap)
	})

	return r
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsAdmin() {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "admin role required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
