package services

import (
	"testing"

	"transparencyhub/models"
)

func TestScoreEmptyProduct(t *testing.T) {
	result := CalculateTransparencyScore(mustProduct(t, map[string]any{}))
	if result.Score != 0 {
		t.Errorf("score = %d, want 0", result.Score)
	}
	if result.Reasoning != ScoreReasoning {
		t.Errorf("unexpected reasoning %q", result.Reasoning)
	}
}

func TestScoreCompleteProduct(t *testing.T) {
	// 10+5+10+6+10+5+3+5+10
	if got := CalculateTransparencyScore(mustProduct(t, completeProduct())).Score; got != 64 {
		t.Errorf("score = %d, want 64", got)
	}
}

func TestScoreDimensions(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		want   int
	}{
		{"empty ingredients", map[string]any{"ingredients": ""}, 0},
		{"two ingredients", map[string]any{"ingredients": "a,b"}, 4},
		{"comma only", map[string]any{"ingredients": ","}, 4},
		{"ingredients capped", map[string]any{"ingredients": "a,b,c,d,e,f,g,h,i,j,k,l"}, 20},
		{"short description", map[string]any{"description": "exactly twenty chars"}, 0},
		{"long description", map[string]any{"description": "twenty-one characters"}, 10},
		{"multibyte description", map[string]any{"description": "ééééééééééééééééééééé"}, 10},
		{"certifications capped", map[string]any{"certifications": []any{"a", "b", "c", "d"}}, 15},
		{"sustainability keys", map[string]any{"sustainability_info": map[string]any{"a": 1, "b": 2}}, 6},
		{"sustainability capped", map[string]any{"sustainability_info": map[string]any{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6}}, 15},
		{"sustainability without packaging", map[string]any{"sustainability_info": map[string]any{"recycled": true}}, 3},
		{"allergens truthy", map[string]any{"allergens": "peanuts"}, 5},
		{"allergens falsy", map[string]any{"allergens": []any{}}, 0},
		{"labor practices empty", map[string]any{"labor_practices": ""}, 0},
		{"labor practices set", map[string]any{"labor_practices": "audited"}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateTransparencyScore(mustProduct(t, tt.fields)).Score; got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreMaximum(t *testing.T) {
	fields := map[string]any{
		"product_name":           "Soap",
		"category":               "Personal Care",
		"description":            "A long enough description of the soap.",
		"ingredients":            "1,2,3,4,5,6,7,8,9,10,11",
		"manufacturing_location": "USA",
		"certifications":         []any{"a", "b", "c"},
		"sustainability_info":    map[string]any{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5},
		"allergens":              []any{"none"},
		"labor_practices":        "audited",
	}
	if got := CalculateTransparencyScore(mustProduct(t, fields)).Score; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestScoreMonotonic(t *testing.T) {
	additions := map[string]any{
		"product_name":           "Soap",
		"category":               "Personal Care",
		"description":            "A 25-character description!",
		"ingredients":            "water, oil, lye",
		"manufacturing_location": "USA",
		"certifications":         []any{"organic"},
		"sustainability_info":    map[string]any{"packaging_material": "glass"},
		"allergens":              []any{"none"},
		"labor_practices":        "fair wage certified",
	}

	fields := map[string]any{}
	prev := CalculateTransparencyScore(mustProduct(t, fields)).Score
	for _, key := range []string{
		models.FieldLaborPractices, models.FieldIngredients, models.FieldProductName,
		models.FieldSustainabilityInfo, models.FieldCategory, models.FieldAllergens,
		models.FieldDescription, models.FieldCertifications, models.FieldManufacturingLocation,
	} {
		fields[key] = additions[key]
		score := CalculateTransparencyScore(mustProduct(t, fields)).Score
		if score < prev {
			t.Errorf("adding %s lowered score from %d to %d", key, prev, score)
		}
		if score < 0 || score > 100 {
			t.Errorf("score %d out of range after adding %s", score, key)
		}
		prev = score
	}
}

func TestScoreBreakdownMatchesTotal(t *testing.T) {
	product := mustProduct(t, completeProduct())
	breakdown := ScoreBreakdown(product)
	if len(breakdown) != 9 {
		t.Fatalf("expected 9 dimensions, got %d", len(breakdown))
	}
	maxTotal := 0
	for _, d := range breakdown {
		if d.Points < 0 || d.Points > d.Max {
			t.Errorf("%s points %d outside [0,%d]", d.Dimension, d.Points, d.Max)
		}
		maxTotal += d.Max
	}
	if maxTotal > 100 {
		t.Errorf("dimension caps sum to %d", maxTotal)
	}
	if breakdown.Total() != CalculateTransparencyScore(product).Score {
		t.Errorf("breakdown total %d differs from score", breakdown.Total())
	}
}
