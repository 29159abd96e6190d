// ABOUTME: CPV classification-code allow-list and prefix matching
// ABOUTME: Codes are normalized to their leading eight digits before lookup

package rules

import (
	"regexp"

	"ao-radar-api/core/domain"
)

// CPVRule is the static outcome for one allow-listed code prefix. The score
// is a fixed lookup, not additive with other prefixes or text rules.
type CPVRule struct {
	// Prefix is matched against the leading digits of a normalized code
	Prefix string

	// Score is the fixed score assigned when this prefix matches
	Score int

	// Tags is the tag set assigned by this prefix
	Tags []string
}

// CPVAllowList is the configured set of procurement code prefixes the radar
// cares about: alarm monitoring, security services and installations, risk
// and security consultancy, and security/safety training.
var CPVAllowList = []CPVRule{
	{Prefix: "79711000", Score: 85, Tags: []string{domain.TagFamilyTele, domain.TagTele}},
	{Prefix: "79710000", Score: 60, Tags: []string{domain.TagFamilyTele, domain.TagTele}},
	{Prefix: "45312000", Score: 55, Tags: []string{domain.TagFamilyTele, domain.TagTele}},
	{Prefix: "50610000", Score: 50, Tags: []string{domain.TagFamilyTele, domain.TagTele}},
	{Prefix: "35120000", Score: 55, Tags: []string{domain.TagFamilyTele, domain.TagTele}},
	{Prefix: "71317100", Score: 60, Tags: []string{domain.TagFamilyAudit, domain.TagAudit}},
	{Prefix: "79417000", Score: 65, Tags: []string{domain.TagFamilyAudit, domain.TagAudit}},
	{Prefix: "71317000", Score: 55, Tags: []string{domain.TagFamilyAudit, domain.TagAudit}},
	{Prefix: "80550000", Score: 65, Tags: []string{domain.TagFamilyTrain, domain.TagTraining}},
	{Prefix: "80561000", Score: 50, Tags: []string{domain.TagFamilyTrain, domain.TagTraining}},
}

var digitRun = regexp.MustCompile(`\d+`)

// NormalizeCPV reduces a raw code value to its leading eight digits. CPV
// codes in the wild appear as "79711000", "79711000-8", or embedded in
// longer labels; anything without eight leading digits normalizes to "".
func NormalizeCPV(raw string) string {
	digits := digitRun.FindString(raw)
	if len(digits) < 8 {
		return ""
	}
	return digits[:8]
}

// MatchCPV returns the allow-list rule for a normalized code, matching on
// leading digits only. Returns (rule, true) on the first matching prefix.
func MatchCPV(code string) (CPVRule, bool) {
	normalized := NormalizeCPV(code)
	if normalized == "" {
		return CPVRule{}, false
	}

	for _, rule := range CPVAllowList {
		if len(normalized) >= len(rule.Prefix) && normalized[:len(rule.Prefix)] == rule.Prefix {
			return rule, true
		}
	}

	return CPVRule{}, false
}
