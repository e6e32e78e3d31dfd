package normalize

import (
	"testing"

	"salestrack/internal/domain"
)

func TestStatusSynonyms(t *testing.T) {
	cases := []struct {
		in     string
		expect domain.OrderStatus
	}{
		{"valide", domain.StatusValid},
		{"Validée", domain.StatusValid},
		{"VALID", domain.StatusValid},
		{"ok", domain.StatusValid},
		{"oui", domain.StatusValid},
		{"1", domain.StatusValid},
		{"en attente", domain.StatusPending},
		{"En Attente", domain.StatusPending},
		{"pending", domain.StatusPending},
		{"0", domain.StatusPending},
		{"probleme iban", domain.StatusIBANProblem},
		{"Problème IBAN", domain.StatusIBANProblem},
		{"roac", domain.StatusROAC},
		{"ROAC client", domain.StatusROAC},
		{"validation finale", domain.StatusSoftValid},
		{"valid soft", domain.StatusSoftValid},
		{"validation_soft", domain.StatusSoftValid},
	}
	for _, tc := range cases {
		if got := Status(tc.in); got != tc.expect {
			t.Fatalf("%q: expected %s got %s", tc.in, tc.expect, got)
		}
	}
}

func TestStatusSubstringFallbacks(t *testing.T) {
	// Free-text variants not in the table still land on a canonical value.
	if got := Status("commande validee hier"); got != domain.StatusValid {
		t.Fatalf("expected valide, got %s", got)
	}
	if got := Status("toujours en attente de retour"); got != domain.StatusPending {
		t.Fatalf("expected en_attente, got %s", got)
	}
}

func TestStatusDefaultsToPending(t *testing.T) {
	for _, in := range []string{"", "???", "annulé", "n/a"} {
		if got := Status(in); got != domain.StatusPending {
			t.Fatalf("%q: expected fallback en_attente, got %s", in, got)
		}
	}
}

func TestSellerNameAlias(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{"Guy Laroche KOUADIO", "Guy la roche"},
		{"guy laroche", "Guy la roche"},
		{"GUY LAROCHE", "Guy la roche"},
		{"Marie Dupont", "Marie Dupont"},
		{"Guy Martin", "Guy Martin"},
	}
	for _, tc := range cases {
		if got := SellerName(tc.in, DefaultAliases); got != tc.expect {
			t.Fatalf("%q: expected %q got %q", tc.in, tc.expect, got)
		}
	}
}

func TestSellerNameNoRules(t *testing.T) {
	if got := SellerName("Guy Laroche", nil); got != "Guy Laroche" {
		t.Fatalf("expected pass-through without rules, got %q", got)
	}
}
