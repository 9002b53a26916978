package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"transparencyhub/models"
)

// Augmentation is the best-effort outcome of asking the text generator for more
// questions. Suggestions are advisory and are never merged into the returned list.
type Augmentation struct {
	Attempted   bool
	Raw         string
	Suggestions []models.GeneratedQuestion
	Err         error
}

// Succeeded reports whether the provider call returned text.
func (a *Augmentation) Succeeded() bool {
	return a != nil && a.Attempted && a.Err == nil
}

func buildAugmentationPrompt(product models.ProductRecord, answers []models.AnsweredQuestion) string {
	currentData, err := json.Marshal(product)
	if err != nil {
		currentData = []byte("{}")
	}
	asked := make([]string, 0, len(answers))
	for _, qa := range answers {
		asked = append(asked, qa.Question)
	}
	askedJSON, err := json.Marshal(asked)
	if err != nil {
		askedJSON = []byte("[]")
	}

	return fmt.Sprintf(`Based on the following product information, generate 2-3 intelligent follow-up questions that would help assess product transparency, health impact, and ethical sourcing.

Product Name: %s
Category: %s
Current Data: %s
Questions Already Asked: %s

Generate questions in the following format:
Q: [question text]
Type: [text/checkbox/radio]
Category: [category name]

Focus on:
1. Health and safety aspects
2. Environmental impact
3. Ethical sourcing and labor practices
4. Product authenticity and quality
`, product.ProductName, product.Category, currentData, askedJSON)
}

// parseSuggestions reads Q:/Type:/Category: blocks. A block starts at each "Q:"
// line; a missing or unknown type becomes "text" and a missing category "general".
// Suggestion ids continue from nextID.
func parseSuggestions(text string, nextID int) []models.GeneratedQuestion {
	var (
		out     []models.GeneratedQuestion
		current *models.GeneratedQuestion
	)
	flush := func() {
		if current == nil || current.Question == "" {
			return
		}
		if !models.ValidQuestionType(current.Type) {
			current.Type = models.QuestionTypeText
		}
		if current.Category == "" {
			current.Category = "general"
		}
		current.ID = nextID + len(out)
		out = append(out, *current)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. "))
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "q", "question":
			flush()
			current = &models.GeneratedQuestion{Question: value}
		case "type":
			if current != nil {
				current.Type = strings.ToLower(strings.Trim(value, "[]"))
			}
		case "category":
			if current != nil {
				current.Category = strings.ToLower(strings.Trim(value, "[]"))
			}
		}
	}
	flush()
	return out
}
