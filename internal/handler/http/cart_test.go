package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robomart/toystore/internal/domain"
	"github.com/robomart/toystore/internal/event"
	"github.com/robomart/toystore/internal/repository"
	"github.com/robomart/toystore/internal/service"
	apperrors "github.com/robomart/toystore/pkg/errors"
	"github.com/robomart/toystore/pkg/health"
)

type memCartRepo struct {
	carts map[string][]domain.LineItem
}

func (m *memCartRepo) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	items, ok := m.carts[sessionID]
	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}
	cp := make([]domain.LineItem, len(items))
	copy(cp, items)
	return &domain.Cart{SessionID: sessionID, Items: cp}, nil
}

func (m *memCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	cp := make([]domain.LineItem, len(cart.Items))
	copy(cp, cart.Items)
	m.carts[cart.SessionID] = cp
	return nil
}

func (m *memCartRepo) Delete(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

type memProductRepo struct {
	products []domain.Product
}

func (m *memProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	return m.products, len(m.products), nil
}

func (m *memProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

func (m *memProductRepo) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for i := range m.products {
		if m.products[i].Slug == slug {
			return &m.products[i], nil
		}
	}
	return nil, apperrors.NotFound("product", slug)
}

type memContactRepo struct {
	created []*domain.ContactMessage
}

func (m *memContactRepo) Create(_ context.Context, msg *domain.ContactMessage) error {
	m.created = append(m.created, msg)
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cartSvc := service.NewCartService(&memCartRepo{carts: map[string][]domain.LineItem{}}, event.NopEmitter{}, logger)
	catalogSvc := service.NewCatalogService(&memProductRepo{products: []domain.Product{
		{ID: "0b8f0c2a-1d2e-4a5b-9c3d-111111111111", Slug: "robo-friend", Name: "Robo Friend", UnitPrice: 2499, Currency: "USD"},
	}}, logger)
	contactSvc := service.NewContactService(&memContactRepo{}, event.NopEmitter{}, logger)

	router := NewRouter(RouterDeps{
		Cart:    NewCartHandler(cartSvc, logger),
		Catalog: NewCatalogHandler(catalogSvc, logger),
		Contact: NewContactHandler(contactSvc, logger),
		Health:  health.NewHandler(),
		Logger:  logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, session, body string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(HeaderSessionID, session)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	envelope := map[string]json.RawMessage{}
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	}
	return resp, envelope
}

func decodeCartView(t *testing.T, envelope map[string]json.RawMessage) CartViewModel {
	t.Helper()
	var view CartViewModel
	require.NoError(t, json.Unmarshal(envelope["data"], &view))
	return view
}

func TestCartRequiresSessionHeader(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doRequest(t, srv, http.MethodGet, "/api/v1/cart", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(envelope["error"], &errResp))
	assert.Equal(t, "MISSING_SESSION", errResp.Code)
}

func TestAddItemRendersView(t *testing.T) {
	srv := newTestServer(t)

	body := `{"product_id":"p1","name":"Robo Friend","unit_price":2499}`
	resp, envelope := doRequest(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decodeCartView(t, envelope)
	assert.Equal(t, 1, view.Badge)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "$24.99", view.Rows[0].UnitPriceDisplay)
	assert.Equal(t, int64(2499), view.Total)
	assert.Equal(t, "$24.99", view.TotalDisplay)
	assert.False(t, view.IsEmpty)
}

func TestAddItemValidation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"unit_price":100}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIncrementAndDecrement(t *testing.T) {
	srv := newTestServer(t)

	body := `{"product_id":"p1","name":"Robo Friend","unit_price":1000}`
	_, _ = doRequest(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1", body)

	resp, envelope := doRequest(t, srv, http.MethodPost, "/api/v1/cart/items/p1/increment", "sess-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeCartView(t, envelope)
	assert.Equal(t, 2, view.Badge)
	assert.Equal(t, "$20.00", view.TotalDisplay)

	resp, envelope = doRequest(t, srv, http.MethodPost, "/api/v1/cart/items/p1/decrement", "sess-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decodeCartView(t, envelope)
	assert.Equal(t, 1, view.Badge)

	// Decrementing to zero removes the row entirely.
	resp, envelope = doRequest(t, srv, http.MethodPost, "/api/v1/cart/items/p1/decrement", "sess-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decodeCartView(t, envelope)
	assert.True(t, view.IsEmpty)
	assert.Empty(t, view.Rows)
}

func TestRemoveItem(t *testing.T) {
	srv := newTestServer(t)

	_, _ = doRequest(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"product_id":"p1","name":"Robo Friend","unit_price":1000}`)
	_, _ = doRequest(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"product_id":"p2","name":"Dino Blocks","unit_price":1899}`)

	resp, envelope := doRequest(t, srv, http.MethodDelete, "/api/v1/cart/items/p1", "sess-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decodeCartView(t, envelope)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "p2", view.Rows[0].ProductID)
}

func TestClearCart(t *testing.T) {
	srv := newTestServer(t)

	_, _ = doRequest(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"product_id":"p1","name":"Robo Friend","unit_price":1000}`)

	resp, _ := doRequest(t, srv, http.MethodDelete, "/api/v1/cart", "sess-1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, envelope := doRequest(t, srv, http.MethodGet, "/api/v1/cart", "sess-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decodeCartView(t, envelope).IsEmpty)
}

func TestCheckout(t *testing.T) {
	srv := newTestServer(t)

	_, _ = doRequest(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"product_id":"p1","name":"Robo Friend","unit_price":2499}`)
	_, _ = doRequest(t, srv, http.MethodPost, "/api/v1/cart/items/p1/increment", "sess-1", "")

	resp, envelope := doRequest(t, srv, http.MethodPost, "/api/v1/checkout", "sess-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary service.CheckoutSummary
	require.NoError(t, json.Unmarshal(envelope["data"], &summary))
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, int64(4998), summary.TotalAmount)

	resp, envelope = doRequest(t, srv, http.MethodGet, "/api/v1/cart", "sess-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decodeCartView(t, envelope).IsEmpty)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, srv, http.MethodPost, "/api/v1/checkout", "sess-1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)

	_, _ = doRequest(t, srv, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"product_id":"p1","name":"Robo Friend","unit_price":1000}`)

	resp, envelope := doRequest(t, srv, http.MethodGet, "/api/v1/cart", "sess-2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decodeCartView(t, envelope).IsEmpty)
}
