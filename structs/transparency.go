package structs

import "transparencyhub/models"

type GenerateQuestionsRequest struct {
	ProductData    map[string]any            `json:"productData" binding:"required"`
	CurrentAnswers []models.AnsweredQuestion `json:"currentAnswers"`
	ProductID      *int                      `json:"productId"`
}

type GenerateQuestionsResponse struct {
	Questions []models.GeneratedQuestion `json:"questions"`
}

type TransparencyScoreRequest struct {
	ProductData map[string]any `json:"productData" binding:"required"`
}

type TransparencyScoreResponse struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// ErrorResponse carries every non-2xx body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
