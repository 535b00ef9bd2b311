package handlers

import (
	"errors"
	"net/http"
	"time"

	fieldRepo "fieldbook/database/repository/field"
	"fieldbook/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FieldHandler exposes the field-lookup collaborator endpoints.
type FieldHandler struct {
	Repo fieldRepo.FieldRepository
}

func NewFieldHandler(repo fieldRepo.FieldRepository) *FieldHandler {
	return &FieldHandler{Repo: repo}
}

func (h *FieldHandler) ListFields(c *gin.Context) {
	fields, err := h.Repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list fields", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

func (h *FieldHandler) GetField(c *gin.Context) {
	field, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "field not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch field", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"field": field})
}

func (h *FieldHandler) CreateField(c *gin.Context) {
	var input struct {
		Name         string  `json:"name" binding:"required"`
		Sport        string  `json:"sport" binding:"required,oneof=football volleyball basketball"`
		Capacity     int     `json:"capacity" binding:"required,gt=0"`
		Address      string  `json:"address" binding:"required"`
		PricePerHour float64 `json:"pricePerHour" binding:"required,gt=0"`
		OpenHour     int     `json:"openHour"`
		CloseHour    int     `json:"closeHour"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	field := models.Field{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Sport:        input.Sport,
		Capacity:     input.Capacity,
		Address:      input.Address,
		PricePerHour: input.PricePerHour,
		OpenHour:     input.OpenHour,
		CloseHour:    input.CloseHour,
		IsAvailable:  true,
		CreatedAt:    time.Now(),
	}
	if err := h.Repo.Create(c.Request.Context(), &field); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create field", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"field": field})
}
