package services

import (
	"unicode/utf8"

	"transparencyhub/models"
)

// ScoreReasoning accompanies every score.
const ScoreReasoning = "Score calculated based on completeness of product information. Key factors: product details, ingredients, certifications, sustainability info, and ethical sourcing information."

const maxScore = 100

// Dimension caps.
const (
	productNamePoints    = 10
	categoryPoints       = 5
	descriptionPoints    = 10
	ingredientsCap       = 20
	manufacturingPoints  = 10
	certificationsCap    = 15
	sustainabilityCap    = 15
	allergensPoints      = 5
	laborPracticesPoints = 10

	pointsPerIngredient     = 2
	pointsPerCertification  = 5
	pointsPerSustainability = 3

	minDescriptionLength = 21
)

// CalculateTransparencyScore scores a product record from 0 to 100.
func CalculateTransparencyScore(product models.ProductRecord) models.ScoreResult {
	return models.ScoreResult{
		Score:     min(maxScore, ScoreBreakdown(product).Total()),
		Reasoning: ScoreReasoning,
	}
}

// ScoreBreakdown reports the points each dimension contributes, uncapped in total.
func ScoreBreakdown(product models.ProductRecord) models.ScoreBreakdown {
	flag := func(ok bool, points int) int {
		if ok {
			return points
		}
		return 0
	}

	return models.ScoreBreakdown{
		{Dimension: models.FieldProductName, Points: flag(product.ProductName != "", productNamePoints), Max: productNamePoints},
		{Dimension: models.FieldCategory, Points: flag(product.Category != "", categoryPoints), Max: categoryPoints},
		{Dimension: models.FieldDescription, Points: flag(utf8.RuneCountInString(product.Description) >= minDescriptionLength, descriptionPoints), Max: descriptionPoints},
		{Dimension: models.FieldIngredients, Points: min(ingredientsCap, product.IngredientCount()*pointsPerIngredient), Max: ingredientsCap},
		{Dimension: models.FieldManufacturingLocation, Points: flag(product.ManufacturingLocation != "", manufacturingPoints), Max: manufacturingPoints},
		{Dimension: models.FieldCertifications, Points: min(certificationsCap, len(product.Certifications)*pointsPerCertification), Max: certificationsCap},
		{Dimension: models.FieldSustainabilityInfo, Points: min(sustainabilityCap, len(product.SustainabilityInfo)*pointsPerSustainability), Max: sustainabilityCap},
		{Dimension: models.FieldAllergens, Points: flag(product.HasAllergens(), allergensPoints), Max: allergensPoints},
		{Dimension: models.FieldLaborPractices, Points: flag(product.LaborPractices != "", laborPracticesPoints), Max: laborPracticesPoints},
	}
}
