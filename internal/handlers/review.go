package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bistroboss/server/internal/models"
)

type ReviewHandler struct {
	DB *gorm.DB
}

func (h *ReviewHandler) GetReviews(c echo.Context) error {
	var reviews []models.Review
	if err := h.DB.Order("id ASC").Find(&reviews).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Details string  `json:"details"`
		Rating  float64 `json:"rating"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review := models.Review{
		Name:    req.Name,
		Email:   req.Email,
		Details: req.Details,
		Rating:  req.Rating,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, review)
}
