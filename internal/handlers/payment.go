package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bistroboss/server/internal/events"
	"github.com/bistroboss/server/internal/models"
	"github.com/bistroboss/server/internal/payments"
)

type PaymentHandler struct {
	DB       *gorm.DB
	Producer events.Publisher
	Intents  payments.IntentClient
}

func (h *PaymentHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicPaymentEvents, fmt.Sprint(event["email"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req struct {
		Price float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Price <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price must be positive")
	}

	amount := int64(math.Round(req.Price * 100))
	secret, err := h.Intents.CreateIntent(c.Request().Context(), amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}

// CreatePayment records the payment and removes the cart lines it covers.
// Both writes run in one transaction, so a crash cannot leave a payment
// behind with its cart intact.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req struct {
		Email         string  `json:"email"`
		Price         float64 `json:"price"`
		TransactionID string  `json:"transactionId"`
		CartIDs       []uint  `json:"cartId"`
		MenuItemIDs   []uint  `json:"menuItemIds"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}
	if req.TransactionID == "" {
		req.TransactionID = uuid.NewString()
	}

	var payment models.Payment

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		payment = models.Payment{
			UserEmail:     req.Email,
			Price:         req.Price,
			TransactionID: req.TransactionID,
			CreatedAt:     time.Now().Unix(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		for _, itemID := range req.MenuItemIDs {
			var item models.MenuItem
			if err := tx.First(&item, itemID).Error; err != nil {
				return err
			}
			pi := models.PaymentItem{
				PaymentID:  payment.ID,
				MenuItemID: item.ID,
				Category:   item.Category,
				Price:      item.Price,
			}
			if err := tx.Create(&pi).Error; err != nil {
				return err
			}
		}

		if len(req.CartIDs) > 0 {
			if err := tx.Where("id IN ?", req.CartIDs).Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, txErr.Error())
	}

	h.publish(c, map[string]any{
		"type":          "payment_recorded",
		"email":         payment.UserEmail,
		"paymentId":     payment.ID,
		"transactionId": payment.TransactionID,
		"price":         payment.Price,
	})

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) GetPayments(c echo.Context) error {
	email := c.Param("email")

	var list []models.Payment
	if err := h.DB.Where("user_email = ?", email).Order("id ASC").Find(&list).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, list)
}
