// Package normalize folds the many historical spellings of order statuses
// and seller names found in imported data onto their canonical forms.
package normalize

import (
	"strings"

	"salestrack/internal/domain"
)

// statusSynonyms is the explicit mapping of folded input tokens to canonical
// statuses. Inputs are lowercased, accent-stripped and space-collapsed before
// lookup, so "Validée" and "validee" hit the same entry.
var statusSynonyms = map[string]domain.OrderStatus{
	"valide":    domain.StatusValid,
	"validee":   domain.StatusValid,
	"valid":     domain.StatusValid,
	"validated": domain.StatusValid,
	"approve":   domain.StatusValid,
	"approved":  domain.StatusValid,
	"ok":        domain.StatusValid,
	"done":      domain.StatusValid,
	"oui":       domain.StatusValid,
	"yes":       domain.StatusValid,
	"true":      domain.StatusValid,
	"1":         domain.StatusValid,
	"completed": domain.StatusValid,
	"complete":  domain.StatusValid,

	"en_attente": domain.StatusPending,
	"attente":    domain.StatusPending,
	"enattente":  domain.StatusPending,
	"pending":    domain.StatusPending,
	"en_cours":   domain.StatusPending,
	"processing": domain.StatusPending,
	"wait":       domain.StatusPending,
	"waiting":    domain.StatusPending,
	"non":        domain.StatusPending,
	"false":      domain.StatusPending,
	"0":          domain.StatusPending,
	"todo":       domain.StatusPending,

	"probleme_iban": domain.StatusIBANProblem,
	"problemeiban":  domain.StatusIBANProblem,

	"roac": domain.StatusROAC,

	"validation_soft":   domain.StatusSoftValid,
	"validation_finale": domain.StatusSoftValid,
	"valid_soft":        domain.StatusSoftValid,
}

// Status maps an arbitrary status representation onto the canonical enum.
// Unrecognized values fall back to pending; that default is part of the
// import contract, not an error.
func Status(value string) domain.OrderStatus {
	folded := fold(value)

	if status, ok := statusSynonyms[folded]; ok {
		return status
	}

	// Substring fallbacks for free-text variants, most specific first.
	switch {
	case strings.Contains(folded, "iban"):
		return domain.StatusIBANProblem
	case strings.Contains(folded, "final"), strings.Contains(folded, "soft"):
		return domain.StatusSoftValid
	case strings.Contains(folded, "roac"):
		return domain.StatusROAC
	case strings.Contains(folded, "valid"):
		return domain.StatusValid
	case strings.Contains(folded, "attent"), strings.Contains(folded, "pend"):
		return domain.StatusPending
	}

	return domain.StatusPending
}

var accentReplacer = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
)

func fold(value string) string {
	folded := strings.ToLower(strings.TrimSpace(value))
	folded = accentReplacer.Replace(folded)
	return strings.Join(strings.Fields(folded), "_")
}

// AliasRule unifies seller-name variants: a name containing every token
// (case-insensitively) is replaced by the canonical spelling. These are data
// quality patches for known duplicate sellers, configured, not hardcoded.
type AliasRule struct {
	Tokens    []string
	Canonical string
}

// DefaultAliases carries the one known merge shipped with the system.
var DefaultAliases = []AliasRule{
	{Tokens: []string{"guy", "laroche"}, Canonical: "Guy la roche"},
}

// SellerName applies the alias rules to a raw seller name. The first
// matching rule wins; an unmatched name passes through unchanged.
func SellerName(raw string, rules []AliasRule) string {
	lower := strings.ToLower(raw)
	for _, rule := range rules {
		matched := true
		for _, token := range rule.Tokens {
			if !strings.Contains(lower, token) {
				matched = false
				break
			}
		}
		if matched && len(rule.Tokens) > 0 {
			return rule.Canonical
		}
	}
	return raw
}
