package models

// Question input types understood by the onboarding wizard.
const (
	QuestionTypeText     = "text"
	QuestionTypeCheckbox = "checkbox"
	QuestionTypeRadio    = "radio"
)

// Question categories produced by the gap rules.
const (
	CategoryIngredients    = "ingredients"
	CategoryManufacturing  = "manufacturing"
	CategoryCertifications = "certifications"
	CategorySustainability = "sustainability"
	CategoryAllergens      = "allergens"
	CategoryEthics         = "ethics"
)

// AnsweredQuestion is a question the wizard already asked, with its answer.
type AnsweredQuestion struct {
	Question string `json:"question"`
	Answer   any    `json:"answer,omitempty"`
	Order    int    `json:"order,omitempty"`
}

// GeneratedQuestion is a follow-up question returned to the caller.
type GeneratedQuestion struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// ValidQuestionType reports whether t is one of the supported input types.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeText, QuestionTypeCheckbox, QuestionTypeRadio:
		return true
	}
	return false
}
