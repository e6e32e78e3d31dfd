package normalize

import (
	"testing"

	"salestrack/internal/domain"
)

func TestProvider(t *testing.T) {
	cases := []struct {
		in     string
		expect domain.LeadsProvider
	}{
		{"hipto", domain.ProviderHipto},
		{"HIPTO", domain.ProviderHipto},
		{"Leads Hipto", domain.ProviderHipto},
		{"dolead", domain.ProviderDolead},
		{"DoLead", domain.ProviderDolead},
		{"mars marketing", domain.ProviderMars},
		{"Mars", domain.ProviderMars},
		{"MM", domain.ProviderMars},
		{" mm ", domain.ProviderMars},
	}
	for _, tc := range cases {
		got, ok := Provider(tc.in)
		if !ok || got != tc.expect {
			t.Fatalf("%q: expected %s got %s (ok=%v)", tc.in, tc.expect, got, ok)
		}
	}
}

func TestProviderRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "facebook", "organique"} {
		if got, ok := Provider(in); ok {
			t.Fatalf("%q: expected no provider, got %s", in, got)
		}
	}
}

func TestLeadsCategories(t *testing.T) {
	cases := []struct {
		in     string
		expect domain.LeadsCategoryCounts
	}{
		{"internet", domain.LeadsCategoryCounts{Internet: 1}},
		{"Mobile", domain.LeadsCategoryCounts{Mobile: 1}},
		{"Internet Sosh", domain.LeadsCategoryCounts{InternetSosh: 1}},
		{"mobile sosh", domain.LeadsCategoryCounts{MobileSosh: 1}},
		{"internet + mobile", domain.LeadsCategoryCounts{Internet: 1, Mobile: 1}},
		{"Internet Sosh + Mobile Sosh", domain.LeadsCategoryCounts{InternetSosh: 1, MobileSosh: 1}},
		{"", domain.LeadsCategoryCounts{}},
		{"fibre pro", domain.LeadsCategoryCounts{}},
	}
	for _, tc := range cases {
		if got := LeadsCategories(tc.in); got != tc.expect {
			t.Fatalf("%q: expected %+v got %+v", tc.in, tc.expect, got)
		}
	}
}
