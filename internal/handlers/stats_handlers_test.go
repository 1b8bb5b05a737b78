package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/bistroboss/server/internal/cache"
	"github.com/bistroboss/server/internal/models"
)

func TestAdminStats(t *testing.T) {
	h := &StatsHandler{DB: initTestDB(t)}
	e := echo.New()

	require.NoError(t, h.DB.Create(&models.User{Email: "a@x.com", Role: "user"}).Error)
	require.NoError(t, h.DB.Create(&models.MenuItem{Name: "Pasta", Category: "pasta", Price: 12}).Error)
	require.NoError(t, h.DB.Create(&models.Payment{UserEmail: "a@x.com", Price: 30, TransactionID: "t1"}).Error)
	require.NoError(t, h.DB.Create(&models.Payment{UserEmail: "a@x.com", Price: 12, TransactionID: "t2"}).Error)

	rec, c := newJSONContext(t, e, http.MethodGet, "/admin-stats", nil)
	require.NoError(t, h.AdminStats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, float64(1), resp["users"])
	require.Equal(t, float64(1), resp["menuItems"])
	require.Equal(t, float64(2), resp["orders"])
	require.Equal(t, float64(42), resp["revenue"])
}

func TestOrderStatsGroupsByCategory(t *testing.T) {
	h := &StatsHandler{DB: initTestDB(t)}
	e := echo.New()

	items := []models.PaymentItem{
		{PaymentID: 1, MenuItemID: 1, Category: "dessert", Price: 6},
		{PaymentID: 1, MenuItemID: 2, Category: "pizza", Price: 10},
		{PaymentID: 2, MenuItemID: 3, Category: "pizza", Price: 12},
	}
	for i := range items {
		require.NoError(t, h.DB.Create(&items[i]).Error)
	}

	rec, c := newJSONContext(t, e, http.MethodGet, "/order-stats", nil)
	require.NoError(t, h.OrderStats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats []OrderStat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Len(t, stats, 2)
	require.Equal(t, OrderStat{Category: "dessert", Quantity: 1, Revenue: 6}, stats[0])
	require.Equal(t, OrderStat{Category: "pizza", Quantity: 2, Revenue: 22}, stats[1])
}

func TestOrderStatsServedFromCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	h := &StatsHandler{DB: initTestDB(t), Cache: cache.New(rdb, time.Minute)}
	e := echo.New()

	require.NoError(t, h.DB.Create(&models.PaymentItem{PaymentID: 1, MenuItemID: 1, Category: "pizza", Price: 10}).Error)

	rec, c := newJSONContext(t, e, http.MethodGet, "/order-stats", nil)
	require.NoError(t, h.OrderStats(c))
	first := rec.Body.String()

	// New rows after the first read do not show up until the TTL lapses.
	require.NoError(t, h.DB.Create(&models.PaymentItem{PaymentID: 2, MenuItemID: 2, Category: "dessert", Price: 6}).Error)

	rec2, c2 := newJSONContext(t, e, http.MethodGet, "/order-stats", nil)
	require.NoError(t, h.OrderStats(c2))
	require.JSONEq(t, first, rec2.Body.String())

	mr.FastForward(2 * time.Minute)

	rec3, c3 := newJSONContext(t, e, http.MethodGet, "/order-stats", nil)
	require.NoError(t, h.OrderStats(c3))

	var stats []OrderStat
	require.NoError(t, json.Unmarshal(rec3.Body.Bytes(), &stats))
	require.Len(t, stats, 2)
}
