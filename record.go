package menuboard

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PriceNotFound is the price placeholder stored when a site publishes no price.
const PriceNotFound = "Price not found."

// MenuRecord is one drink scraped from a brand website.
type MenuRecord struct {
	Brand       Brand     `json:"brand"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Nutrition   Nutrition `json:"nutrition"`
}

// Validate returns an error if the record contains invalid fields.
func (r *MenuRecord) Validate() error {
	if r.Brand == "" {
		return Errorf(EINVALID, "menu record brand required")
	}
	return nil
}

// NutritionFact is a single nutrient label and its display value, e.g. 카페인 / 150mg.
type NutritionFact struct {
	Key   string
	Value string
}

// Nutrition is an ordered set of nutrition facts. It encodes as a JSON object
// whose keys keep the order in which they were scraped.
type Nutrition []NutritionFact

// Get returns the value stored under key.
func (n Nutrition) Get(key string) (string, bool) {
	for _, f := range n {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value under key, or appends it if key is new.
func (n *Nutrition) Set(key, value string) {
	for i := range *n {
		if (*n)[i].Key == key {
			(*n)[i].Value = value
			return
		}
	}
	*n = append(*n, NutritionFact{Key: key, Value: value})
}

// MarshalJSON implements json.Marshaler.
func (n Nutrition) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, f.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Non-string values are kept in
// their JSON text form.
func (n *Nutrition) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*n = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("nutrition: expected object, got %v", tok)
	}

	facts := Nutrition{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("nutrition: expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			value = string(raw)
		}
		facts.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*n = facts
	return nil
}

// writeJSONString writes s as a JSON string without escaping HTML characters,
// so stored files stay readable.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1) // Encode appends a newline
	return nil
}
