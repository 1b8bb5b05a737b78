package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bistroboss/server/internal/cache"
	"github.com/bistroboss/server/internal/models"
)

const orderStatsCacheKey = "stats:orders"

type StatsHandler struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

type OrderStat struct {
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

func (h *StatsHandler) AdminStats(c echo.Context) error {
	var users, menuItems, orders int64
	if err := h.DB.Model(&models.User{}).Count(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.MenuItem{}).Count(&menuItems).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.DB.Model(&models.Payment{}).Count(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var revenue float64
	if err := h.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(price), 0)").
		Scan(&revenue).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":     users,
		"menuItems": menuItems,
		"orders":    orders,
		"revenue":   revenue,
	})
}

// OrderStats groups paid items by menu category. The aggregate is served from
// a short-TTL cache when one is wired; stale reads are acceptable here.
func (h *StatsHandler) OrderStats(c echo.Context) error {
	ctx := c.Request().Context()

	if h.Cache != nil {
		var cached []OrderStat
		hit, err := h.Cache.GetJSON(ctx, orderStatsCacheKey, &cached)
		if err != nil {
			c.Logger().Errorf("stats cache read error: %v", err)
		} else if hit {
			return c.JSON(http.StatusOK, cached)
		}
	}

	var stats []OrderStat
	if err := h.DB.Model(&models.PaymentItem{}).
		Select("category, COUNT(*) AS quantity, COALESCE(SUM(price), 0) AS revenue").
		Group("category").
		Order("category ASC").
		Scan(&stats).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.Cache != nil {
		if err := h.Cache.SetJSON(ctx, orderStatsCacheKey, stats); err != nil {
			c.Logger().Errorf("stats cache write error: %v", err)
		}
	}

	return c.JSON(http.StatusOK, stats)
}
