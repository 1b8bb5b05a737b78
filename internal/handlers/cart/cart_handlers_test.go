package cart

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bistroboss/server/internal/events"
	"github.com/bistroboss/server/internal/models"
)

func newCartHandler(t *testing.T) *CartHandler {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.CartLine{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return &CartHandler{DB: db, Producer: &events.RecordingPublisher{}}
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func updateBody(itemID uint, number int) map[string]any {
	return map[string]any{"itemId": itemID, "email": "a@x.com", "number": number}
}

func lineQuantity(t *testing.T, db *gorm.DB, id uint) uint {
	t.Helper()
	var line models.CartLine
	require.NoError(t, db.First(&line, id).Error)
	return line.Quantity
}

func TestAddToCart(t *testing.T) {
	h := newCartHandler(t)
	e := echo.New()

	rec, c := doJSON(t, e, http.MethodPost, "/carts", map[string]any{
		"menuItemId": 7,
		"email":      "a@x.com",
		"quantity":   2,
	})
	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var line models.CartLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &line))
	require.Equal(t, uint(7), line.MenuItemID)
	require.Equal(t, "a@x.com", line.UserEmail)
	require.Equal(t, uint(2), line.Quantity)
}

func TestGetCart(t *testing.T) {
	h := newCartHandler(t)
	e := echo.New()

	require.NoError(t, h.DB.Create(&models.CartLine{MenuItemID: 1, UserEmail: "a@x.com", Quantity: 3}).Error)
	require.NoError(t, h.DB.Create(&models.CartLine{MenuItemID: 2, UserEmail: "b@x.com", Quantity: 1}).Error)

	rec, c := doJSON(t, e, http.MethodGet, "/carts/a@x.com", nil)
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")
	require.NoError(t, h.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var lines []models.CartLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
	require.Len(t, lines, 1)
	require.Equal(t, uint(3), lines[0].Quantity)
}

func TestUpdateCartDeltaLaw(t *testing.T) {
	h := newCartHandler(t)
	e := echo.New()

	line := models.CartLine{MenuItemID: 1, UserEmail: "a@x.com", Quantity: 2}
	require.NoError(t, h.DB.Create(&line).Error)

	rec, c := doJSON(t, e, http.MethodPatch, "/carts/update", updateBody(line.ID, 1))
	require.NoError(t, h.UpdateCart(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint(3), lineQuantity(t, h.DB, line.ID))

	rec2, c2 := doJSON(t, e, http.MethodPatch, "/carts/update", updateBody(line.ID, -1))
	require.NoError(t, h.UpdateCart(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	// +1 then -1 restores the original quantity.
	require.Equal(t, uint(2), lineQuantity(t, h.DB, line.ID))
}

func TestUpdateCartZeroDeletes(t *testing.T) {
	h := newCartHandler(t)
	e := echo.New()

	line := models.CartLine{MenuItemID: 1, UserEmail: "a@x.com", Quantity: 5}
	require.NoError(t, h.DB.Create(&line).Error)

	rec, c := doJSON(t, e, http.MethodPatch, "/carts/update", updateBody(line.ID, 0))
	require.NoError(t, h.UpdateCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "deleted", resp["outcome"])

	var count int64
	require.NoError(t, h.DB.Model(&models.CartLine{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestUpdateCartDecrementAtOneDeletes(t *testing.T) {
	h := newCartHandler(t)
	e := echo.New()

	line := models.CartLine{MenuItemID: 1, UserEmail: "a@x.com", Quantity: 1}
	require.NoError(t, h.DB.Create(&line).Error)

	rec, c := doJSON(t, e, http.MethodPatch, "/carts/update", updateBody(line.ID, -1))
	require.NoError(t, h.UpdateCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "deleted", resp["outcome"])

	// A zero quantity is never persisted.
	var count int64
	require.NoError(t, h.DB.Model(&models.CartLine{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestUpdateCartInvalidDelta(t *testing.T) {
	h := newCartHandler(t)
	e := echo.New()

	line := models.CartLine{MenuItemID: 1, UserEmail: "a@x.com", Quantity: 4}
	require.NoError(t, h.DB.Create(&line).Error)

	_, c := doJSON(t, e, http.MethodPatch, "/carts/update", updateBody(line.ID, 5))
	err := h.UpdateCart(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)

	// No mutation on a rejected delta.
	require.Equal(t, uint(4), lineQuantity(t, h.DB, line.ID))
}

func TestUpdateCartLineNotFound(t *testing.T) {
	h := newCartHandler(t)
	e := echo.New()

	_, c := doJSON(t, e, http.MethodPatch, "/carts/update", updateBody(123, 1))
	err := h.UpdateCart(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, he.Code)
}
