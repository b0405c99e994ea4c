package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkhouse/storefront/internal/api/handlers"
	"github.com/inkhouse/storefront/internal/api/middleware"
	"github.com/inkhouse/storefront/internal/auth"
	"github.com/inkhouse/storefront/internal/catalog"
	"github.com/inkhouse/storefront/internal/client"
	"github.com/inkhouse/storefront/internal/config"
	"github.com/inkhouse/storefront/internal/repository/memory"
	"github.com/inkhouse/storefront/internal/service"
	"github.com/inkhouse/storefront/internal/session"
	"github.com/inkhouse/storefront/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	tokens *auth.Tokens
	store  *session.MemoryStore
}

func setupRouter(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()

	products, err := catalog.DefaultFixtures()
	require.NoError(t, err)
	repos := memory.NewRepositories(products)

	cfg := &config.Config{
		Environment: "test",
		Checkout: config.CheckoutConfig{
			FreeShippingThreshold: decimal.NewFromInt(100),
			ShippingFee:           decimal.RequireFromString("9.99"),
			TaxRateBasis:          825,
		},
	}
	tokens := auth.NewTokens("test-secret", time.Hour)
	store := session.NewMemoryStore()

	pricing := handlers.PricingFromConfig(cfg)
	orders := service.NewOrderService(repos, pricing, cfg.Checkout.TaxRateBasis, logger)
	sf := &handlers.Storefront{
		Loader:    catalog.NewLoader(service.NewProductService(repos, logger), logger),
		Submitter: service.NewLocalSubmitter(orders, service.NewStockService(repos, logger)),
		Orders:    orders,
		Accounts:  service.NewUserService(repos, tokens, logger),
		Pricing:   pricing,
		Logger:    logger,
	}

	return &testServer{
		router: NewRouter(cfg, repos, sf, store, tokens, logger),
		tokens: tokens,
		store:  store,
	}
}

// visitor replays the session id between requests like a browser would
type visitor struct {
	t         *testing.T
	server    *testServer
	sessionID string
}

func (v *visitor) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	v.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(v.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if v.sessionID != "" {
		req.Header.Set(middleware.SessionHeader, v.sessionID)
	}

	w := httptest.NewRecorder()
	v.server.router.ServeHTTP(w, req)
	if id := w.Header().Get(middleware.SessionHeader); id != "" {
		v.sessionID = id
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type cartBody struct {
	Items []struct {
		ProductID int64   `json:"productId"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
	} `json:"items"`
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
	Totals    struct {
		ShippingFee  float64 `json:"shippingFee"`
		GrandTotal   float64 `json:"grandTotal"`
		FreeShipping bool    `json:"freeShipping"`
	} `json:"totals"`
}

func TestHealth(t *testing.T) {
	s := setupRouter(t)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBackendProducts(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	w := v.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get(client.SchemaHeader))

	w = v.do(http.MethodPost, "/api/products", map[string]interface{}{"title": "", "price": 10, "qtyAvailable": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"message":"Title is required"}`, w.Body.String())

	w = v.do(http.MethodPost, "/api/products", map[string]interface{}{"title": "Harbor Lights", "price": 49.5, "qtyAvailable": 3})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID             int64 `json:"id"`
		BasePriceCents int64 `json:"basePriceCents"`
	}
	decode(t, w, &created)
	assert.Equal(t, int64(4950), created.BasePriceCents)

	w = v.do(http.MethodGet, "/api/products/search?name=HARBOR", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found []map[string]interface{}
	decode(t, w, &found)
	assert.Len(t, found, 1)

	w = v.do(http.MethodDelete, "/api/products/7", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = v.do(http.MethodGet, "/api/products/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"product not found"}`, w.Body.String())

	w = v.do(http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientAgainstBackend(t *testing.T) {
	s := setupRouter(t)
	server := httptest.NewServer(s.router)
	defer server.Close()

	c := client.NewClient(config.BackendConfig{BaseURL: server.URL + "/api", Timeout: 5 * time.Second}, zap.NewNop())
	ctx := context.Background()

	products, err := c.GetProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 6)

	found, err := c.GetProductByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Skiing on the Slopes", found.Title)

	missing, err := c.GetProductByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)

	qty := 1
	_, err = c.CreateProduct(ctx, service.ProductInput{Title: "No price", QtyAvailable: &qty})
	var httpErr *errors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Valid price is required", httpErr.Error())

	require.NoError(t, c.DeleteProduct(ctx, 6))
	_, err = c.GetUsers(ctx)
	assert.NoError(t, err)
}

func TestStorefrontCatalog(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	w := v.do(http.MethodGet, "/api/storefront/catalog?sortBy=price-desc&inStock=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, v.sessionID)

	var body struct {
		Products []catalog.Product `json:"products"`
		Count    int               `json:"count"`
	}
	decode(t, w, &body)
	require.Equal(t, 4, body.Count)
	assert.Equal(t, 199.99, body.Products[0].Price)
	assert.Equal(t, 79.99, body.Products[1].Price)
	for _, p := range body.Products {
		assert.True(t, p.InStock)
	}

	w = v.do(http.MethodGet, "/api/storefront/catalog/categories", nil)
	assert.JSONEq(t, `{"categories":["Posters","Prints"]}`, w.Body.String())

	w = v.do(http.MethodGet, "/api/storefront/products/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		Product catalog.Product   `json:"product"`
		Related []catalog.Product `json:"related"`
	}
	decode(t, w, &detail)
	assert.Equal(t, "Skiing on the Slopes", detail.Product.Name)
	for _, p := range detail.Related {
		assert.Equal(t, "Posters", p.Category)
		assert.NotEqual(t, int64(1), p.ID)
	}

	w = v.do(http.MethodGet, "/api/storefront/products/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStorefrontCart(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	w := v.do(http.MethodPost, "/api/storefront/cart/items", map[string]interface{}{"productId": 3, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	w = v.do(http.MethodPost, "/api/storefront/cart/items", map[string]interface{}{"productId": 1})
	require.Equal(t, http.StatusOK, w.Code)

	var body cartBody
	decode(t, w, &body)
	require.Len(t, body.Items, 2)
	assert.Equal(t, 3, body.ItemCount)
	assert.Equal(t, 189.97, body.Subtotal)
	assert.True(t, body.Totals.FreeShipping)
	assert.Equal(t, 189.97, body.Totals.GrandTotal)

	w = v.do(http.MethodPost, "/api/storefront/cart/items", map[string]interface{}{"productId": 4})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = v.do(http.MethodPost, "/api/storefront/cart/items", map[string]interface{}{"productId": 1, "quantity": 150})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// over the maximum keeps the current quantity
	w = v.do(http.MethodPut, "/api/storefront/cart/items/3", map[string]interface{}{"quantity": 150})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Equal(t, 2, body.Items[0].Quantity)

	w = v.do(http.MethodPut, "/api/storefront/cart/items/3", map[string]interface{}{"step": "decrement"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Equal(t, 1, body.Items[0].Quantity)

	w = v.do(http.MethodPut, "/api/storefront/cart/items/3", map[string]interface{}{"quantity": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = v.do(http.MethodPut, "/api/storefront/cart/items/5", map[string]interface{}{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = v.do(http.MethodDelete, "/api/storefront/cart/items/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Equal(t, 1, body.ItemCount)
	assert.Equal(t, 29.99, body.Subtotal)
	assert.Equal(t, 9.99, body.Totals.ShippingFee)
	assert.Equal(t, 39.98, body.Totals.GrandTotal)

	w = v.do(http.MethodGet, "/api/storefront/cart/count", nil)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())

	// the cart survives in the store for the next request
	stored, err := s.store.Load(context.Background(), v.sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Cart.ItemCount())

	w = v.do(http.MethodDelete, "/api/storefront/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Empty(t, body.Items)
}

func TestStorefrontCheckoutFlow(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	w := v.do(http.MethodPost, "/api/storefront/checkout", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	v.do(http.MethodPost, "/api/storefront/cart/items", map[string]interface{}{"productId": 2, "quantity": 3})

	w = v.do(http.MethodPost, "/api/storefront/checkout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = v.do(http.MethodPost, "/api/storefront/account/sign-up", map[string]string{
		"email":    "ada@example.com",
		"password": "hunter22",
		"name":     "Ada Lovelace",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = v.do(http.MethodPost, "/api/storefront/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Stage    string `json:"stage"`
		Step     int    `json:"step"`
		Shipping struct {
			Country string `json:"country"`
		} `json:"shipping"`
		Totals struct {
			Subtotal   float64 `json:"subtotal"`
			GrandTotal float64 `json:"grandTotal"`
		} `json:"totals"`
	}
	decode(t, w, &view)
	assert.Equal(t, "Shipping", view.Stage)
	assert.Equal(t, "USA", view.Shipping.Country)
	assert.Equal(t, 89.97, view.Totals.Subtotal)
	assert.Equal(t, 99.96, view.Totals.GrandTotal)

	w = v.do(http.MethodPost, "/api/storefront/checkout/back", nil)
	decode(t, w, &view)
	assert.Equal(t, 0, view.Step)

	w = v.do(http.MethodPut, "/api/storefront/checkout/shipping", map[string]string{"fullName": "Ada"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = v.do(http.MethodPut, "/api/storefront/checkout/shipping", map[string]string{
		"fullName": "Ada Lovelace",
		"address":  "1 Main St",
		"city":     "Austin",
		"state":    "TX",
		"zip":      "78701",
	})
	require.Equal(t, http.StatusOK, w.Code)
	v.do(http.MethodPost, "/api/storefront/checkout/next", nil)

	w = v.do(http.MethodPut, "/api/storefront/checkout/payment", map[string]string{
		"cardNumber": "4242 4242 4242 4242",
		"cardName":   "Ada Lovelace",
		"expiry":     "12/30",
		"cvv":        "123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"last4":"4242"`)
	assert.NotContains(t, w.Body.String(), "4242 4242")

	v.do(http.MethodPost, "/api/storefront/checkout/next", nil)
	w = v.do(http.MethodPost, "/api/storefront/checkout/next", nil)
	decode(t, w, &view)
	assert.Equal(t, "Review", view.Stage)
	assert.Equal(t, 2, view.Step)

	w = v.do(http.MethodPost, "/api/storefront/checkout/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var confirmation struct {
		OrderID int64  `json:"orderId"`
		Status  string `json:"status"`
	}
	decode(t, w, &confirmation)
	assert.Equal(t, int64(1001), confirmation.OrderID)
	assert.Equal(t, "Processing", confirmation.Status)

	w = v.do(http.MethodGet, "/api/storefront/cart/count", nil)
	assert.JSONEq(t, `{"count":0}`, w.Body.String())

	w = v.do(http.MethodGet, "/api/storefront/checkout", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = v.do(http.MethodGet, "/api/storefront/account/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Orders []service.OrderSummary `json:"orders"`
	}
	decode(t, w, &history)
	require.Len(t, history.Orders, 1)
	assert.Equal(t, "Processing", history.Orders[0].Status)
	assert.Equal(t, 3, history.Orders[0].Items[0].Quantity)
}

func TestSubmitNotAtReview(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	v.do(http.MethodPost, "/api/storefront/cart/items", map[string]interface{}{"productId": 2})
	v.do(http.MethodPost, "/api/storefront/account/sign-up", map[string]string{"email": "ada@example.com", "password": "hunter22"})
	v.do(http.MethodPost, "/api/storefront/checkout", nil)

	w := v.do(http.MethodPost, "/api/storefront/checkout/submit", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = v.do(http.MethodGet, "/api/storefront/cart/count", nil)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())
}

func TestAccountRequiresSignIn(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	w := v.do(http.MethodGet, "/api/storefront/account", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = v.do(http.MethodPost, "/api/storefront/account/sign-up", map[string]string{"email": "ada@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = v.do(http.MethodPut, "/api/storefront/account", map[string]string{"name": "Countess"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_name":"Countess"`)

	w = v.do(http.MethodPost, "/api/storefront/account/sign-out", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = v.do(http.MethodGet, "/api/storefront/account", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = v.do(http.MethodPost, "/api/storefront/account/sign-in", map[string]string{"email": "ada@example.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = v.do(http.MethodPost, "/api/storefront/account/sign-in", map[string]string{"email": "ada@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)
	w = v.do(http.MethodGet, "/api/storefront/account", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestForgedTokenSignsOut(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	v.do(http.MethodPost, "/api/storefront/account/sign-up", map[string]string{"email": "ada@example.com", "password": "hunter22"})

	sess, err := s.store.Load(context.Background(), v.sessionID)
	require.NoError(t, err)
	sess.Token = "forged"
	require.NoError(t, s.store.Save(context.Background(), sess))

	w := v.do(http.MethodGet, "/api/storefront/account", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	sess, err = s.store.Load(context.Background(), v.sessionID)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestBackendOrderStatus(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	w := v.do(http.MethodPost, "/api/users/addUser", map[string]string{"email": "ada@example.com", "password": "hunter22", "full_name": "Ada"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User has been added", w.Body.String())

	w = v.do(http.MethodPost, "/api/orders", map[string]interface{}{
		"userId": 1,
		"items":  []map[string]interface{}{{"productId": 5, "name": "Uncle Sam", "price": 199.99, "quantity": 1}},
		"total":  199.99,
		"shipping": map[string]string{
			"fullName": "Ada", "address": "1 Main St", "city": "Austin", "state": "TX", "zip": "78701",
		},
		"payment": map[string]string{"cardNumber": "4242", "cardName": "Ada", "expiry": "12/30", "cvv": "123"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var order struct {
		ID         int64  `json:"id"`
		Status     string `json:"status"`
		TaxCents   int64  `json:"taxCents"`
		TotalCents int64  `json:"totalCents"`
	}
	decode(t, w, &order)
	assert.Equal(t, "placed", order.Status)
	assert.Equal(t, int64(1650), order.TaxCents)
	assert.Equal(t, int64(21649), order.TotalCents)

	w = v.do(http.MethodPatch, "/api/orders/1001/status?status=fulfilled", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = v.do(http.MethodPatch, "/api/orders/1001/status?status=cancelled", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = v.do(http.MethodGet, "/api/orders/user/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = v.do(http.MethodDelete, "/api/orders/1001", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = v.do(http.MethodGet, "/api/orders/1001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionIDStableAcrossReads(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	w := v.do(http.MethodGet, "/api/storefront/catalog?sortBy=price-asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := v.sessionID
	require.NotEmpty(t, first)

	w = v.do(http.MethodGet, "/api/storefront/catalog?inStock=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first, v.sessionID)

	_, err := s.store.Load(context.Background(), first)
	assert.NoError(t, err)
}

func TestCartQuantityFieldInput(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	w := v.do(http.MethodPost, "/api/storefront/cart/items", map[string]interface{}{"productId": 1, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	var body cartBody
	w = v.do(http.MethodPut, "/api/storefront/cart/items/1", map[string]interface{}{"quantity": "abc"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Equal(t, 3, body.Items[0].Quantity)

	w = v.do(http.MethodPut, "/api/storefront/cart/items/1", map[string]interface{}{"quantity": " 5 "})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &body)
	assert.Equal(t, 5, body.Items[0].Quantity)

	w = v.do(http.MethodPut, "/api/storefront/cart/items/1", map[string]interface{}{"quantity": "0"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = v.do(http.MethodPut, "/api/storefront/cart/items/1", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignInRotatesSessionID(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	v.do(http.MethodPost, "/api/storefront/cart/items", map[string]interface{}{"productId": 2})
	anonymous := v.sessionID
	require.NotEmpty(t, anonymous)

	w := v.do(http.MethodPost, "/api/storefront/account/sign-up", map[string]string{"email": "ada@example.com", "password": "hunter22"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEqual(t, anonymous, v.sessionID)

	_, err := s.store.Load(context.Background(), anonymous)
	assert.ErrorIs(t, err, session.ErrNotFound)

	// the cart moves with the session
	w = v.do(http.MethodGet, "/api/storefront/cart/count", nil)
	assert.JSONEq(t, `{"count":1}`, w.Body.String())
}

func TestPaymentSecurityCodeNotStored(t *testing.T) {
	s := setupRouter(t)
	v := &visitor{t: t, server: s}

	v.do(http.MethodPost, "/api/storefront/cart/items", map[string]interface{}{"productId": 2})
	v.do(http.MethodPost, "/api/storefront/account/sign-up", map[string]string{"email": "ada@example.com", "password": "hunter22"})
	v.do(http.MethodPost, "/api/storefront/checkout", nil)

	w := v.do(http.MethodPut, "/api/storefront/checkout/payment", map[string]string{
		"cardNumber": "4242 4242 4242 4242",
		"cardName":   "Ada Lovelace",
		"expiry":     "12/30",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = v.do(http.MethodPut, "/api/storefront/checkout/payment", map[string]string{
		"cardNumber": "4242 4242 4242 4242",
		"cardName":   "Ada Lovelace",
		"expiry":     "12/30",
		"cvv":        "987",
	})
	require.Equal(t, http.StatusOK, w.Code)

	sess, err := s.store.Load(context.Background(), v.sessionID)
	require.NoError(t, err)
	raw, err := json.Marshal(sess)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "987")
	assert.Equal(t, "4242", sess.Checkout.Payment.Last4())
}
