package menuboard

import (
	"strings"
)

// FormatDocuments formats documents for display or LLM context.
// Each document is headed by its brand and menu name, falling back to the
// document ID when the name is empty. Documents are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		header := doc.Metadata.Name
		if header == "" {
			header = doc.ID
		}
		if doc.Metadata.Brand != "" {
			header = string(doc.Metadata.Brand) + " / " + header
		}
		parts = append(parts, "## Menu: "+header+"\n"+strings.TrimRight(doc.Content, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// FormatNutrition renders nutrition facts on one line, e.g. "칼로리 10kcal · 카페인 150mg".
func FormatNutrition(n Nutrition) string {
	parts := make([]string, 0, len(n))
	for _, f := range n {
		parts = append(parts, f.Key+" "+f.Value)
	}
	return strings.Join(parts, " · ")
}
