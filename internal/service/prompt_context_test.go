package service

import (
	"strings"
	"testing"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
)

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en", "English"},
		{"pt", "Portuguese"},
		{"es", "Spanish"},
		{"fr", "French"},
		{"de", "German"},
		{"ja", "ja"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := languageName(tt.code); got != tt.want {
			t.Errorf("languageName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestBuildMaterialsContext(t *testing.T) {
	t.Run("no documents", func(t *testing.T) {
		got := buildMaterialsContext(nil)
		if got != "No study materials available." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("documents become named sections", func(t *testing.T) {
		docs := []*entity.Document{
			{FileName: "calculus.pdf", ExtractedText: "Limits and continuity."},
			{FileName: "algebra.pdf", ExtractedText: "Linear maps."},
		}

		got := buildMaterialsContext(docs)

		if !strings.Contains(got, "=== calculus.pdf ===\nLimits and continuity.") {
			t.Errorf("first section missing:\n%s", got)
		}
		if !strings.Contains(got, "=== algebra.pdf ===\nLinear maps.") {
			t.Errorf("second section missing:\n%s", got)
		}
		if !strings.Contains(got, "\n\n---\n\n") {
			t.Errorf("sections not separated:\n%s", got)
		}
	})
}
