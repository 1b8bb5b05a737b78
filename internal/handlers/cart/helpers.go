package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/server/internal/events"
)

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.TopicCartEvents, fmt.Sprint(event["email"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
