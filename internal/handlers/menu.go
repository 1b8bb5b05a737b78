package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bistroboss/server/internal/models"
	"github.com/bistroboss/server/internal/util"
)

// MenuIndexer keeps the search index in step with menu writes. Indexing is
// best effort: a failed index call is logged, never surfaced to the client.
type MenuIndexer interface {
	Index(ctx context.Context, item models.MenuItem) error
	Delete(ctx context.Context, id uint) error
}

type MenuHandler struct {
	DB      *gorm.DB
	Indexer MenuIndexer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *MenuHandler) index(c echo.Context, item models.MenuItem) {
	if h.Indexer == nil {
		return
	}
	if err := h.Indexer.Index(c.Request().Context(), item); err != nil {
		c.Logger().Errorf("search index error: %v", err)
	}
}

func (h *MenuHandler) GetMenu(c echo.Context) error {
	var items []models.MenuItem
	if err := h.DB.Order("id ASC").Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

// GetMenuByCategory pages through one category; skip is page*limit with a
// zero-based page.
func (h *MenuHandler) GetMenuByCategory(c echo.Context) error {
	category := c.Param("category")
	page := parseIntDefault(c.QueryParam("page"), 0)
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)

	offset, limit := util.Calculate(page, limit)

	var items []models.MenuItem
	if err := h.DB.Where("category = ?", category).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) TotalMenuCount(c echo.Context) error {
	category := c.Param("category")

	var count int64
	if err := h.DB.Model(&models.MenuItem{}).
		Where("category = ?", category).
		Count(&count).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

func (h *MenuHandler) CreateMenuItem(c echo.Context) error {
	var req struct {
		Name     string  `json:"name"`
		Recipe   string  `json:"recipe"`
		Image    string  `json:"image"`
		Category string  `json:"category"`
		Price    float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item := models.MenuItem{
		Name:     req.Name,
		Recipe:   req.Recipe,
		Image:    req.Image,
		Category: req.Category,
		Price:    req.Price,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.index(c, item)

	return c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) PatchMenuItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Name     string  `json:"name"`
		Recipe   string  `json:"recipe"`
		Image    string  `json:"image"`
		Category string  `json:"category"`
		Price    float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var item models.MenuItem
	if err := h.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	item.Name = req.Name
	item.Recipe = req.Recipe
	item.Image = req.Image
	item.Category = req.Category
	item.Price = req.Price

	if err := h.DB.Save(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.index(c, item)

	return c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.DB.Delete(&models.MenuItem{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.Indexer != nil {
		if err := h.Indexer.Delete(c.Request().Context(), uint(id)); err != nil {
			c.Logger().Errorf("search index error: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted": id})
}
