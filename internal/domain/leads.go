package domain

import "time"

// LeadsProvider identifies where a Leads-mission sale originated.
type LeadsProvider string

const (
	ProviderHipto  LeadsProvider = "hipto"
	ProviderDolead LeadsProvider = "dolead"
	ProviderMars   LeadsProvider = "mars marketing"
)

// LeadsProviders is the fixed display order of providers on the dashboard.
var LeadsProviders = []LeadsProvider{ProviderHipto, ProviderDolead, ProviderMars}

// ProviderLabel returns the display name of a provider.
func ProviderLabel(provider LeadsProvider) string {
	switch provider {
	case ProviderHipto:
		return "Hipto"
	case ProviderDolead:
		return "Dolead"
	case ProviderMars:
		return "Mars Marketing"
	default:
		return string(provider)
	}
}

// LeadsCategoryCounts splits Leads sales across the four product lines sold
// by the mission. A combined offer counts once in each of its lines.
type LeadsCategoryCounts struct {
	Internet     int `json:"internet"`
	Mobile       int `json:"mobile"`
	InternetSosh int `json:"internetSosh"`
	MobileSosh   int `json:"mobileSosh"`
}

func (c LeadsCategoryCounts) Total() int {
	return c.Internet + c.Mobile + c.InternetSosh + c.MobileSosh
}

func (c *LeadsCategoryCounts) Add(other LeadsCategoryCounts) {
	c.Internet += other.Internet
	c.Mobile += other.Mobile
	c.InternetSosh += other.InternetSosh
	c.MobileSosh += other.MobileSosh
}

// LeadsSale is one sale recorded for the Leads mission. OfferType keeps the
// raw offer wording; categorization happens at read time so historical rows
// pick up mapping fixes.
type LeadsSale struct {
	ID        int64         `json:"id"`
	Date      time.Time     `json:"date"`
	Provider  LeadsProvider `json:"provider"`
	OfferType string        `json:"offerType"`
	UserID    string        `json:"userId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// LeadsOrder is a batch of leads bought from a provider. Only Hipto and
// Dolead sell leads; Mars Marketing records sales without orders.
type LeadsOrder struct {
	ID        int64         `json:"id"`
	Date      time.Time     `json:"date"`
	Provider  LeadsProvider `json:"provider"`
	Quantity  int           `json:"quantity"`
	CreatedAt time.Time     `json:"createdAt"`
}
