// ABOUTME: ClassificationResult holds the score and tag set for one candidate
// ABOUTME: Enforces the score clamp and duplicate-free tag invariants

package domain

// Well-known tag codes assigned by the rule table.
const (
	TagNoise        = "BRUIT"
	TagTender       = "APPEL_OFFRE"
	TagFamilyTele   = "FAM_TELE"
	TagTele         = "TELESURVEILLANCE"
	TagFamilyAudit  = "FAM_AUDIT"
	TagAudit        = "AUDIT_SECURITE"
	TagFamilyTrain  = "FAM_FORMATION"
	TagTraining     = "FORMATION"
	TagRequirements = "EXIGENCES"
	TagHSE          = "HSE"
)

// ClassificationResult is the outcome of scoring one candidate.
type ClassificationResult struct {
	// Score in [0,100]
	Score int

	// Tags is a duplicate-free set of tag codes, in rule order
	Tags []string

	// Rejected is set when a noise pattern fired; the candidate is dropped
	// regardless of any positive signal
	Rejected bool
}

// AddTag appends a tag if it is not already present.
func (r *ClassificationResult) AddTag(tag string) {
	for _, t := range r.Tags {
		if t == tag {
			return
		}
	}
	r.Tags = append(r.Tags, tag)
}

// HasTag reports whether the tag set contains the given code.
func (r *ClassificationResult) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ClampScore forces the score into [0,100].
func (r *ClassificationResult) ClampScore() {
	if r.Score > 100 {
		r.Score = 100
	}
	if r.Score < 0 {
		r.Score = 0
	}
}

// Family returns the coarse business family derived from the tag set, used
// for dashboard filtering. Empty when no family tag is present.
func (r *ClassificationResult) Family() string {
	switch {
	case r.HasTag(TagFamilyTele):
		return "TELE"
	case r.HasTag(TagFamilyAudit):
		return "AUDIT"
	case r.HasTag(TagFamilyTrain):
		return "FORMATION"
	}
	return ""
}
