// ABOUTME: Rule-based classifier producing scores and tag sets for candidates
// ABOUTME: Noise patterns override everything; code and text paths never add up

package rules

import (
	"regexp"
	"strings"

	"ao-radar-api/core/domain"
)

// Classifier scores candidate text against the declarative rule table and,
// for structured sources, extracted classification codes against the CPV
// allow-list.
type Classifier struct {
	table []TextRule
	noise []*regexp.Regexp
	cpv   []CPVRule
}

// NewClassifier creates a classifier over the default rule table.
func NewClassifier() *Classifier {
	return &Classifier{
		table: Table,
		noise: NoisePatterns,
		cpv:   CPVAllowList,
	}
}

// ClassifyText scores the concatenated title and body. Noise patterns are
// checked first: any match forces score 0, a single override tag, and
// rejection regardless of positive signals.
func (c *Classifier) ClassifyText(title, body string) domain.ClassificationResult {
	text := strings.ToLower(title + " " + body)

	if matchAny(text, c.noise) {
		result := domain.ClassificationResult{Rejected: true}
		result.AddTag(domain.TagNoise)
		return result
	}

	var result domain.ClassificationResult
	for _, rule := range c.table {
		if !matchAny(text, rule.Patterns) {
			continue
		}
		if len(rule.Guards) > 0 && !matchAny(text, rule.Guards) {
			continue
		}
		result.Score += rule.Weight
		for _, tag := range rule.Tags {
			result.AddTag(tag)
		}
	}

	result.ClampScore()
	return result
}

// ClassifyCodes qualifies a candidate through its extracted classification
// codes. The best matching allow-listed prefix determines a fixed score;
// tags from all matching prefixes are combined. Candidates with no matching
// code return a zero result.
func (c *Classifier) ClassifyCodes(codes []string) domain.ClassificationResult {
	var result domain.ClassificationResult

	for _, code := range codes {
		rule, ok := MatchCPV(code)
		if !ok {
			continue
		}
		if rule.Score > result.Score {
			result.Score = rule.Score
		}
		for _, tag := range rule.Tags {
			result.AddTag(tag)
		}
	}

	result.ClampScore()
	return result
}

// Classify runs both paths for a candidate. The text path decides noise
// rejection; otherwise the higher-scoring of the text and code paths wins,
// with tag sets merged when codes matched.
func (c *Classifier) Classify(candidate domain.CandidateRecord) domain.ClassificationResult {
	textResult := c.ClassifyText(candidate.Title, candidate.Body)
	if textResult.Rejected {
		return textResult
	}

	if len(candidate.Codes) == 0 {
		return textResult
	}

	codeResult := c.ClassifyCodes(candidate.Codes)
	if codeResult.Score == 0 && len(codeResult.Tags) == 0 {
		return textResult
	}

	merged := textResult
	if codeResult.Score > merged.Score {
		merged.Score = codeResult.Score
	}
	for _, tag := range codeResult.Tags {
		merged.AddTag(tag)
	}
	merged.ClampScore()
	return merged
}

func matchAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
