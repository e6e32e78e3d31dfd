package domain

import "time"

type ObjectiveType string

const (
	ObjectiveSales          ObjectiveType = "sales"
	ObjectiveContactsArgued ObjectiveType = "contactsArgued"
	ObjectiveOther          ObjectiveType = "other"
)

type PeriodKind string

const (
	PeriodMonth PeriodKind = "month"
	PeriodWeek  PeriodKind = "week"
	PeriodDay   PeriodKind = "day"
)

type Scope string

const (
	ScopeTeam     Scope = "team"
	ScopePersonal Scope = "personal"
)

type OrderStatus string

const (
	StatusPending     OrderStatus = "en_attente"
	StatusValid       OrderStatus = "valide"
	StatusIBANProblem OrderStatus = "probleme_iban"
	StatusROAC        OrderStatus = "roac"
	StatusSoftValid   OrderStatus = "validation_soft"
)

// StatusLabel returns the display label used in exports and recap mails.
func StatusLabel(status OrderStatus) string {
	switch status {
	case StatusPending:
		return "En attente"
	case StatusValid:
		return "Validé"
	case StatusIBANProblem:
		return "Problème IBAN"
	case StatusROAC:
		return "ROAC"
	case StatusSoftValid:
		return "Valid Soft"
	default:
		return string(status)
	}
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
)

// Objective is a target count of records to reach within a calendar period.
// Exactly one period field group is populated, matching Period: (Year, Month)
// for month, (WeekYear, WeekNumber) for week, (DayYear, DayMonth, DayDate)
// for day. Assignee fields are set only for personal scope.
type Objective struct {
	ID             int64         `json:"id"`
	Type           ObjectiveType `json:"type"`
	Label          string        `json:"label"`
	Target         int           `json:"target"`
	Period         PeriodKind    `json:"period"`
	Year           int           `json:"year,omitempty"`
	Month          int           `json:"month,omitempty"`
	WeekYear       int           `json:"weekYear,omitempty"`
	WeekNumber     int           `json:"weekNumber,omitempty"`
	DayYear        int           `json:"dayYear,omitempty"`
	DayMonth       int           `json:"dayMonth,omitempty"`
	DayDate        int           `json:"dayDate,omitempty"`
	Scope          Scope         `json:"scope"`
	UserID         string        `json:"userId,omitempty"`
	AssignedTo     string        `json:"assignedTo,omitempty"`
	AssignedToName string        `json:"assignedToName,omitempty"`
	IsActive       bool          `json:"isActive"`
	CreatedBy      string        `json:"createdBy,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

type Sale struct {
	ID              int64       `json:"id"`
	Date            time.Time   `json:"date"`
	Offer           string      `json:"offer"`
	Name            string      `json:"name"`
	OrderNumber     string      `json:"orderNumber"`
	OrderStatus     OrderStatus `json:"orderStatus"`
	UserID          string      `json:"userId,omitempty"`
	ClientFirstName string      `json:"clientFirstName,omitempty"`
	ClientLastName  string      `json:"clientLastName,omitempty"`
	ClientPhone     string      `json:"clientPhone,omitempty"`
	ImportBatchID   string      `json:"importBatchId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// ContactsArgued holds the argued-contacts count for one calendar day.
// Date is formatted YYYY-MM-DD; there is at most one row per date.
type ContactsArgued struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Count     int       `json:"count"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Recipient struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Offer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Offers is the fixed catalog sold by the mission.
var Offers = []Offer{
	{ID: "canal", Name: "CANAL+"},
	{ID: "canal-cine-series", Name: "CANAL+ Ciné Séries"},
	{ID: "canal-sport", Name: "CANAL+ Sport"},
	{ID: "canal-100", Name: "CANAL+ 100%"},
}

// OfferName resolves an offer id to its display name, falling back to the id
// for offers no longer in the catalog.
func OfferName(offerID string) string {
	for _, offer := range Offers {
		if offer.ID == offerID {
			return offer.Name
		}
	}
	return offerID
}
