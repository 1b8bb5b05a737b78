package cart

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bistroboss/server/internal/events"
	"github.com/bistroboss/server/internal/models"
)

type CartHandler struct {
	DB       *gorm.DB
	Producer events.Publisher
}

func (h *CartHandler) GetCart(c echo.Context) error {
	email := c.Param("email")

	var lines []models.CartLine
	if err := h.DB.Where("user_email = ?", email).Order("id ASC").Find(&lines).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		MenuItemID uint   `json:"menuItemId"`
		Email      string `json:"email"`
		Quantity   uint   `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	line := models.CartLine{
		MenuItemID: req.MenuItemID,
		UserEmail:  req.Email,
		Quantity:   req.Quantity,
	}
	if err := h.DB.Create(&line).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, map[string]any{
		"type":       "cart_line_added",
		"email":      line.UserEmail,
		"id":         line.ID,
		"menuItemId": line.MenuItemID,
		"quantity":   line.Quantity,
	})

	return c.JSON(http.StatusOK, line)
}

// UpdateCart applies a signed quantity delta to one cart line. Zero deletes
// the line outright, a decrement that would reach zero deletes it too, so a
// zero quantity is never persisted. Replaying an increment changes state
// twice; there is no deduplication key.
func (h *CartHandler) UpdateCart(c echo.Context) error {
	var req struct {
		ItemID uint   `json:"itemId"`
		Email  string `json:"email"`
		Number int    `json:"number"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Number < -1 || req.Number > 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid delta")
	}

	var line models.CartLine
	if err := h.DB.First(&line, req.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "cart line not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Number == 0 || (req.Number == -1 && line.Quantity <= 1) {
		if err := h.DB.Delete(&line).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		h.publish(c, map[string]any{
			"type":  "cart_line_deleted",
			"email": line.UserEmail,
			"id":    line.ID,
		})
		return c.JSON(http.StatusOK, echo.Map{"outcome": "deleted", "id": line.ID})
	}

	if req.Number == 1 {
		line.Quantity++
	} else {
		line.Quantity--
	}
	if err := h.DB.Save(&line).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	outcome := "incremented"
	if req.Number == -1 {
		outcome = "decremented"
	}

	h.publish(c, map[string]any{
		"type":     "cart_line_updated",
		"email":    line.UserEmail,
		"id":       line.ID,
		"quantity": line.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"outcome":  outcome,
		"id":       line.ID,
		"quantity": line.Quantity,
	})
}
