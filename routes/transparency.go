package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transparencyhub/internal/logger"
	"transparencyhub/models"
	"transparencyhub/services"
	"transparencyhub/structs"
)

// TransparencyHandler serves the question and score endpoints.
type TransparencyHandler struct {
	Generator *services.QuestionGenerator
}

func NewTransparencyHandler(generator *services.QuestionGenerator) *TransparencyHandler {
	return &TransparencyHandler{Generator: generator}
}

// Register mounts every route on router.
func (h *TransparencyHandler) Register(router gin.IRouter) {
	router.GET("/", RootHandler)
	router.GET("/health", HealthHandler)
	router.POST("/generate-questions", h.GenerateQuestions)
	router.POST("/transparency-score", h.TransparencyScore)
}

func RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Product Transparency AI Service is running"})
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GenerateQuestions returns follow-up questions for the submitted product data.
func (h *TransparencyHandler) GenerateQuestions(c *gin.Context) {
	var req structs.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, structs.ErrorResponse{Detail: "Invalid request payload: " + err.Error()})
		return
	}

	product, err := models.NewProductRecord(req.ProductData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Detail: "Error generating questions: " + err.Error()})
		return
	}

	set := h.Generator.Generate(c.Request.Context(), product, req.CurrentAnswers)
	if set.Augmentation != nil {
		logger.Debug("augmentation outcome",
			"request_id", c.GetString("request_id"),
			"succeeded", set.Augmentation.Succeeded(),
			"suggestions", len(set.Augmentation.Suggestions),
		)
	}

	c.JSON(http.StatusOK, structs.GenerateQuestionsResponse{Questions: set.Questions})
}

// TransparencyScore returns the 0-100 transparency score for the submitted product data.
func (h *TransparencyHandler) TransparencyScore(c *gin.Context) {
	var req structs.TransparencyScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, structs.ErrorResponse{Detail: "Invalid request payload: " + err.Error()})
		return
	}

	product, err := models.NewProductRecord(req.ProductData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Detail: "Error calculating score: " + err.Error()})
		return
	}

	result := services.CalculateTransparencyScore(product)
	c.JSON(http.StatusOK, structs.TransparencyScoreResponse{Score: result.Score, Reasoning: result.Reasoning})
}
