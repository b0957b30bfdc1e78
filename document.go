package menuboard

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Document is the retrieval unit built from one menu record.
type Document struct {
	ID       string           `json:"id"`
	Content  string           `json:"content"`
	Metadata DocumentMetadata `json:"metadata"`
}

// DocumentMetadata carries the record fields used for filtering and display.
// Nutrition values are reduced to integers with NutritionInt.
type DocumentMetadata struct {
	Brand        Brand  `json:"brand"`
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	Calories     int    `json:"calories"`
	Sugars       int    `json:"sugars"`
	Protein      int    `json:"protein"`
	SaturatedFat int    `json:"saturatedFat"`
	Sodium       int    `json:"sodium"`
	Caffeine     int    `json:"caffeine"`
}

// NewDocument renders a record as a retrieval document. It returns nil for
// records with neither a name nor any descriptive content.
func NewDocument(r *MenuRecord) *Document {
	if r == nil {
		return nil
	}
	name := strings.TrimSpace(r.Name)
	description := strings.TrimSpace(r.Description)
	if name == "" && description == "" && len(r.Nutrition) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "브랜드: %s\n", r.Brand)
	fmt.Fprintf(&b, "메뉴 이름: %s\n", name)
	if r.Category != "" {
		fmt.Fprintf(&b, "카테고리: %s\n", r.Category)
	}
	fmt.Fprintf(&b, "설명: %s\n", description)
	if len(r.Nutrition) > 0 {
		b.WriteString("영양 정보:\n")
		for _, f := range r.Nutrition {
			fmt.Fprintf(&b, "  %s: %s\n", f.Key, f.Value)
		}
	}
	content := b.String()

	nutrient := func(key string) int {
		v, _ := r.Nutrition.Get(key)
		return NutritionInt(v)
	}

	return &Document{
		ID:      fmt.Sprintf("%016x", xxhash.Sum64String(content)),
		Content: content,
		Metadata: DocumentMetadata{
			Brand:        r.Brand,
			Name:         name,
			Category:     r.Category,
			Calories:     nutrient(NutrientCalories),
			Sugars:       nutrient(NutrientSugars),
			Protein:      nutrient(NutrientProtein),
			SaturatedFat: nutrient(NutrientSaturatedFat),
			Sodium:       nutrient(NutrientSodium),
			Caffeine:     nutrient(NutrientCaffeine),
		},
	}
}

// BuildDocuments converts records to documents, dropping empty records.
func BuildDocuments(records []*MenuRecord) []*Document {
	docs := make([]*Document, 0, len(records))
	for _, r := range records {
		if doc := NewDocument(r); doc != nil {
			docs = append(docs, doc)
		}
	}
	return docs
}
