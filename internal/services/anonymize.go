package services

import (
	"strings"
)

const (
	// SentinelContributor is the canonical anonymous submitter in the
	// dataset. Compared case-insensitively and never further obscured.
	SentinelContributor = "anonyme"

	// AnonymizedLabel replaces every other contributor name when
	// anonymization is on. Fixed casing, independent of the input.
	AnonymizedLabel = "Anonymisé"
)

// Anonymizer decides how contributor names are shown. The same Enabled
// value drives both the in-memory rendering and the SQL expression used
// by the search query builder, so searching by displayed name always
// matches what is displayed.
type Anonymizer struct {
	Enabled bool
}

func NewAnonymizer(enabled bool) *Anonymizer {
	return &Anonymizer{Enabled: enabled}
}

// Apply maps a raw contributor name to its display name.
func (a *Anonymizer) Apply(name string) string {
	if !a.Enabled {
		return name
	}
	if strings.EqualFold(name, SentinelContributor) {
		return name
	}
	return AnonymizedLabel
}

// ContributorSQL returns a SQL expression (plus bind arguments)
// evaluating to the display name of the contributor column. It must
// agree with Apply on every input.
func (a *Anonymizer) ContributorSQL() (string, []interface{}) {
	if !a.Enabled {
		return "contributor", nil
	}
	return "CASE WHEN LOWER(contributor) = ? THEN contributor ELSE ? END",
		[]interface{}{SentinelContributor, AnonymizedLabel}
}
