package services

import (
	"context"
	"fmt"
	"time"

	"transparencyhub/internal/logger"
	"transparencyhub/models"
)

const (
	// MaxQuestions caps every response.
	MaxQuestions = 5
	// augmentBelow is the rule-based count under which augmentation is attempted.
	augmentBelow = 3

	defaultAugmentTimeout = 5 * time.Second
)

// gapRule produces one question when its field is missing.
type gapRule struct {
	category string
	qtype    string
	missing  func(p models.ProductRecord) bool
	question func(p models.ProductRecord) string
}

func fixed(text string) func(models.ProductRecord) string {
	return func(models.ProductRecord) string { return text }
}

// gapRules are evaluated in order; the order is part of the response contract.
var gapRules = []gapRule{
	{
		category: models.CategoryIngredients,
		qtype:    models.QuestionTypeText,
		missing:  func(p models.ProductRecord) bool { return p.IngredientCount() < 3 },
		question: func(p models.ProductRecord) string {
			return fmt.Sprintf("Can you provide a detailed list of all ingredients in %s? Please include any additives, preservatives, or processing aids.", p.ProductName)
		},
	},
	{
		category: models.CategoryManufacturing,
		qtype:    models.QuestionTypeText,
		missing:  func(p models.ProductRecord) bool { return p.ManufacturingLocation == "" },
		question: fixed("Where is this product manufactured? Please provide the country and, if possible, the specific facility location."),
	},
	{
		category: models.CategoryCertifications,
		qtype:    models.QuestionTypeCheckbox,
		missing:  func(p models.ProductRecord) bool { return len(p.Certifications) == 0 },
		question: fixed("Does this product have any third-party certifications (e.g., organic, fair trade, non-GMO, cruelty-free)? If yes, please list them."),
	},
	{
		category: models.CategorySustainability,
		qtype:    models.QuestionTypeText,
		missing: func(p models.ProductRecord) bool {
			return len(p.SustainabilityInfo) == 0 || !p.HasPackagingMaterial()
		},
		question: fixed("What type of packaging material is used? Is it recyclable, biodegradable, or made from recycled materials?"),
	},
	{
		category: models.CategoryAllergens,
		qtype:    models.QuestionTypeCheckbox,
		missing:  func(p models.ProductRecord) bool { return !p.HasAllergens() },
		question: fixed("Does this product contain any common allergens (e.g., nuts, dairy, gluten, soy)? If yes, please list them."),
	},
	{
		category: models.CategoryEthics,
		qtype:    models.QuestionTypeText,
		missing:  func(p models.ProductRecord) bool { return !p.HasLaborPractices() },
		question: fixed("Can you provide information about labor practices in your supply chain? Are workers paid fair wages and working in safe conditions?"),
	},
}

// QuestionSet is the generator's result: the questions to return plus the
// outcome of the optional augmentation call (nil when it was not attempted).
type QuestionSet struct {
	Questions    []models.GeneratedQuestion
	Augmentation *Augmentation
}

// QuestionGenerator turns information gaps in a product record into follow-up
// questions. It is safe for concurrent use.
type QuestionGenerator struct {
	textGen TextGenerator
	timeout time.Duration
}

// NewQuestionGenerator returns a generator. textGen may be nil, which disables
// augmentation; a non-positive timeout selects the default.
func NewQuestionGenerator(textGen TextGenerator, timeout time.Duration) *QuestionGenerator {
	if timeout <= 0 {
		timeout = defaultAugmentTimeout
	}
	return &QuestionGenerator{textGen: textGen, timeout: timeout}
}

// Generate applies the gap rules in order, numbering questions from
// len(answers)+1, and returns at most MaxQuestions of them.
func (g *QuestionGenerator) Generate(ctx context.Context, product models.ProductRecord, answers []models.AnsweredQuestion) QuestionSet {
	questions := RuleQuestions(product, len(answers)+1)

	var augmentation *Augmentation
	if g != nil && g.textGen != nil && len(questions) < augmentBelow {
		augmentation = g.augment(ctx, product, answers, len(answers)+len(questions)+1)
	}

	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}
	return QuestionSet{Questions: questions, Augmentation: augmentation}
}

// RuleQuestions returns one question per failed gap rule, ids starting at firstID.
// The result is not truncated.
func RuleQuestions(product models.ProductRecord, firstID int) []models.GeneratedQuestion {
	questions := make([]models.GeneratedQuestion, 0, len(gapRules))
	for _, rule := range gapRules {
		if !rule.missing(product) {
			continue
		}
		questions = append(questions, models.GeneratedQuestion{
			ID:       firstID + len(questions),
			Question: rule.question(product),
			Type:     rule.qtype,
			Category: rule.category,
		})
	}
	return questions
}

// augment makes one bounded provider call. Every failure is recorded on the
// result and logged; none is returned.
func (g *QuestionGenerator) augment(ctx context.Context, product models.ProductRecord, answers []models.AnsweredQuestion, nextID int) *Augmentation {
	result := &Augmentation{Attempted: true}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.textGen.GenerateText(ctx, buildAugmentationPrompt(product, answers))
	if err != nil {
		result.Err = err
		logger.Warn("question augmentation failed", "error", err)
		return result
	}

	result.Raw = text
	result.Suggestions = parseSuggestions(text, nextID)
	logger.Debug("question augmentation returned", "suggestions", len(result.Suggestions))
	return result
}
