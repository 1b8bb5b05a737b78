package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/bistroboss/server/internal/handlers"
	"github.com/bistroboss/server/internal/handlers/cart"
	"github.com/bistroboss/server/internal/middleware/auth"
)

type Deps struct {
	Auth           *auth.Middleware
	UserHandler    *handlers.UserHandler
	MenuHandler    *handlers.MenuHandler
	ReviewHandler  *handlers.ReviewHandler
	CartHandler    *cart.CartHandler
	PaymentHandler *handlers.PaymentHandler
	StatsHandler   *handlers.StatsHandler
	SearchHandler  *handlers.SearchHandler
}

// Register wires every route with its authorization chain:
// none | verify | verify+bind | verify+admin. The body identity source is
// attached only to routes whose contract carries an email in the body;
// binding is vacuous without one.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	verify := d.Auth.RequireToken
	bindParam := d.Auth.BindIdentity(auth.FromParam("email"))
	bindBody := d.Auth.BindIdentity(auth.FromBody())
	admin := d.Auth.AdminOnly

	e.POST("/jwt", d.UserHandler.IssueToken)

	e.GET("/menu", d.MenuHandler.GetMenu)
	e.GET("/menu/:category", d.MenuHandler.GetMenuByCategory)
	e.GET("/totalMenuCount/:category", d.MenuHandler.TotalMenuCount)
	e.POST("/menu", d.MenuHandler.CreateMenuItem, verify, admin)
	e.PATCH("/menu/:id", d.MenuHandler.PatchMenuItem, verify, admin)
	e.DELETE("/menu/:id", d.MenuHandler.DeleteMenuItem, verify, admin)
	if d.SearchHandler != nil {
		e.GET("/menu-search", d.SearchHandler.Search)
	}

	e.GET("/reviews", d.ReviewHandler.GetReviews)
	e.POST("/reviews", d.ReviewHandler.CreateReview, verify, bindBody)

	e.GET("/user/admin/:email", d.UserHandler.IsAdmin, verify, bindParam)
	e.GET("/users", d.UserHandler.GetUsers, verify, admin)
	e.POST("/users", d.UserHandler.CreateUser)
	e.DELETE("/users/:id", d.UserHandler.DeleteUser, verify, admin)
	e.PATCH("/users/admin/:id", d.UserHandler.PromoteAdmin, verify, admin)

	e.POST("/carts", d.CartHandler.AddToCart, verify, bindBody)
	e.PATCH("/carts/update", d.CartHandler.UpdateCart, verify, bindBody)
	e.GET("/carts/:email", d.CartHandler.GetCart, verify, bindParam)

	e.POST("/create/create-payment-intent", d.PaymentHandler.CreatePaymentIntent)
	e.POST("/payments", d.PaymentHandler.CreatePayment)
	e.GET("/payments/:email", d.PaymentHandler.GetPayments, verify, bindParam)

	e.GET("/admin-stats", d.StatsHandler.AdminStats, verify)
	e.GET("/order-stats", d.StatsHandler.OrderStats)
}
