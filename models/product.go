package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Product record field names as sent by the onboarding wizard.
const (
	FieldProductName           = "product_name"
	FieldCategory              = "category"
	FieldDescription           = "description"
	FieldIngredients           = "ingredients"
	FieldManufacturingLocation = "manufacturing_location"
	FieldCertifications        = "certifications"
	FieldSustainabilityInfo    = "sustainability_info"
	FieldAllergens             = "allergens"
	FieldLaborPractices        = "labor_practices"

	// PackagingMaterialKey is the sustainability attribute the generator asks about.
	PackagingMaterialKey = "packaging_material"
)

// ProductRecord is the disclosure record collected for a product. Every field is
// optional: an absent key, an empty value and a falsy value are treated the same
// by the gap checks, with the exception of labor_practices (see HasLaborPractices).
type ProductRecord struct {
	ProductName           string
	Category              string
	Description           string
	Ingredients           string
	ManufacturingLocation string
	Certifications        []string
	SustainabilityInfo    map[string]any
	Allergens             any
	LaborPractices        string

	present map[string]bool
	fields  map[string]any
}

// FieldError reports a product field whose JSON value has the wrong shape.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewProductRecord builds a record from an already-decoded JSON object.
func NewProductRecord(fields map[string]any) (ProductRecord, error) {
	var record ProductRecord
	data, err := json.Marshal(fields)
	if err != nil {
		return record, fmt.Errorf("failed to encode product fields: %w", err)
	}
	err = json.Unmarshal(data, &record)
	return record, err
}

// UnmarshalJSON decodes a product object, remembering which keys were sent.
func (p *ProductRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("product data must be an object: %w", err)
	}

	record := ProductRecord{
		present: make(map[string]bool, len(raw)),
		fields:  make(map[string]any, len(raw)),
	}
	for key, value := range raw {
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return &FieldError{Field: key, Err: err}
		}
		record.present[key] = true
		record.fields[key] = v
	}

	targets := []struct {
		key string
		dst any
	}{
		{FieldProductName, &record.ProductName},
		{FieldCategory, &record.Category},
		{FieldDescription, &record.Description},
		{FieldIngredients, &record.Ingredients},
		{FieldManufacturingLocation, &record.ManufacturingLocation},
		{FieldCertifications, &record.Certifications},
		{FieldSustainabilityInfo, &record.SustainabilityInfo},
		{FieldAllergens, &record.Allergens},
		{FieldLaborPractices, &record.LaborPractices},
	}
	for _, t := range targets {
		value, ok := raw[t.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, t.dst); err != nil {
			return &FieldError{Field: t.key, Err: err}
		}
	}

	*p = record
	return nil
}

// MarshalJSON renders every field that was sent, including unknown ones.
func (p ProductRecord) MarshalJSON() ([]byte, error) {
	if p.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.fields)
}

// Has reports whether key was present in the decoded object, whatever its value.
func (p ProductRecord) Has(key string) bool {
	return p.present[key]
}

// HasLaborPractices is a presence-only check: an empty or null value still counts.
func (p ProductRecord) HasLaborPractices() bool {
	return p.Has(FieldLaborPractices)
}

// IngredientCount splits the ingredient list on commas without trimming, so
// "a,b" counts 2 and "," also counts 2. An empty list counts 0.
func (p ProductRecord) IngredientCount() int {
	if p.Ingredients == "" {
		return 0
	}
	return len(strings.Split(p.Ingredients, ","))
}

// HasPackagingMaterial reports a truthy packaging_material sustainability attribute.
func (p ProductRecord) HasPackagingMaterial() bool {
	return Truthy(p.SustainabilityInfo[PackagingMaterialKey])
}

// HasAllergens reports a truthy allergens value.
func (p ProductRecord) HasAllergens() bool {
	return Truthy(p.Allergens)
}

// Truthy applies JSON truthiness: null, false, 0, "" and empty arrays or objects
// are false.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case int:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case []string:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
