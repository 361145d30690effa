package service

import (
	"fmt"
	"strings"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
)

// languageName expands a client language code into the name the prompt
// templates expect. Unknown codes pass through unchanged.
func languageName(code string) string {
	switch code {
	case "en":
		return "English"
	case "pt":
		return "Portuguese"
	case "es":
		return "Spanish"
	case "fr":
		return "French"
	case "de":
		return "German"
	}
	return code
}

// buildMaterialsContext concatenates extracted document texts into one
// prompt block, one section per document.
func buildMaterialsContext(documents []*entity.Document) string {
	if len(documents) == 0 {
		return "No study materials available."
	}

	sections := make([]string, len(documents))
	for i, doc := range documents {
		sections[i] = fmt.Sprintf("=== %s ===\n%s", doc.FileName, doc.ExtractedText)
	}
	return strings.Join(sections, "\n\n---\n\n")
}
