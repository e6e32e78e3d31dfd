package normalize

import (
	"strings"

	"salestrack/internal/domain"
)

// Provider folds the historical spellings of lead providers onto the
// canonical set. Returns false for sources that are not a known provider;
// those rows are excluded from provider breakdowns rather than guessed.
func Provider(raw string) (domain.LeadsProvider, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return "", false
	}
	compact := strings.Join(strings.Fields(lower), "")

	switch {
	case strings.Contains(lower, "hipto"):
		return domain.ProviderHipto, true
	case strings.Contains(lower, "dolead"):
		return domain.ProviderDolead, true
	case strings.Contains(lower, "mars"), compact == "mm":
		return domain.ProviderMars, true
	}
	return "", false
}

// LeadsCategories maps a raw offer type onto category counts. Combined
// offers count once per line; an unrecognized value counts nowhere.
func LeadsCategories(offerType string) domain.LeadsCategoryCounts {
	compact := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(offerType))), "")

	var counts domain.LeadsCategoryCounts
	switch compact {
	case "internet":
		counts.Internet = 1
	case "mobile":
		counts.Mobile = 1
	case "internetsosh":
		counts.InternetSosh = 1
	case "mobilesosh":
		counts.MobileSosh = 1
	case "internet+mobile":
		counts.Internet, counts.Mobile = 1, 1
	case "internetsosh+mobilesosh":
		counts.InternetSosh, counts.MobileSosh = 1, 1
	}
	return counts
}
