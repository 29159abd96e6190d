// ABOUTME: Tests for ClassificationResult tag set and score clamp behavior
// ABOUTME: Verifies duplicate suppression and family derivation from tags

package domain

import "testing"

func TestClassificationResult_AddTag_NoDuplicates(t *testing.T) {
	var r ClassificationResult

	r.AddTag(TagTender)
	r.AddTag(TagFamilyTele)
	r.AddTag(TagTender)

	if len(r.Tags) != 2 {
		t.Errorf("expected 2 tags, got %d: %v", len(r.Tags), r.Tags)
	}
}

func TestClassificationResult_ClampScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"within range", 42, 42},
		{"above max", 130, 100},
		{"below min", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ClassificationResult{Score: tt.score}
			r.ClampScore()

			if r.Score != tt.want {
				t.Errorf("ClampScore() = %d, want %d", r.Score, tt.want)
			}
		})
	}
}

func TestClassificationResult_Family(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{"monitoring family", []string{TagFamilyTele, TagTele}, "TELE"},
		{"audit family", []string{TagFamilyAudit}, "AUDIT"},
		{"training family", []string{TagFamilyTrain, TagTraining}, "FORMATION"},
		{"monitoring wins over audit", []string{TagFamilyAudit, TagFamilyTele}, "TELE"},
		{"no family", []string{TagTender}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ClassificationResult{Tags: tt.tags}

			if got := r.Family(); got != tt.want {
				t.Errorf("Family() = %q, want %q", got, tt.want)
			}
		})
	}
}
