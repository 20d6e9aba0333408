package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Storefront-api/internal/interfaces/http"
)

// ── Dobles ────────────────────────────────────────────────────────────────────

type fakeCatalog struct{}

func (fakeCatalog) List(context.Context, repository.ProductFilter) (*dto.ProductListResponse, error) {
	return &dto.ProductListResponse{Items: []dto.ProductSummary{}}, nil
}
func (fakeCatalog) Detail(_ context.Context, source, slug string) (*dto.ProductDetailResponse, error) {
	if slug != "red-lehenga" {
		return nil, domain.ErrNotFound
	}
	return &dto.ProductDetailResponse{Source: source, Slug: slug}, nil
}
func (fakeCatalog) ResolveSelection(context.Context, string, dto.SelectionRequest) (*dto.SelectionResponse, error) {
	return &dto.SelectionResponse{}, nil
}
func (fakeCatalog) PreviewPricing(dto.PricingPreviewRequest) dto.PricingResponse {
	return dto.PricingResponse{}
}
func (fakeCatalog) Create(context.Context, dto.ProductRequest) (*dto.ProductResponse, error) {
	return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
}
func (fakeCatalog) Update(context.Context, string, dto.ProductRequest) (*dto.ProductResponse, error) {
	return nil, domain.ErrNotFound
}
func (fakeCatalog) GetByID(context.Context, string) (*dto.ProductResponse, error) {
	return nil, domain.ErrNotFound
}
func (fakeCatalog) Delete(context.Context, string) error { return nil }
func (fakeCatalog) ListAdmin(context.Context, repository.ProductFilter) ([]dto.ProductResponse, error) {
	return nil, nil
}

type fakeCart struct{ gotUser string }

func (f *fakeCart) Get(_ context.Context, userID string) (*dto.CartResponse, error) {
	f.gotUser = userID
	return &dto.CartResponse{Success: true, Cart: []dto.CartLineDTO{}}, nil
}
func (f *fakeCart) Add(context.Context, string, dto.AddToCartRequest) (*dto.CartResponse, error) {
	return nil, fmt.Errorf("%w: Red/M", domain.ErrOutOfStock)
}
func (f *fakeCart) UpdateQuantity(context.Context, string, dto.UpdateCartRequest) (*dto.CartResponse, error) {
	return nil, domain.ErrInvalidInput
}
func (f *fakeCart) Remove(context.Context, string, string) (*dto.CartResponse, error) {
	return &dto.CartResponse{Success: true}, nil
}
func (f *fakeCart) Totals(_ context.Context, _ string, _ string, discount decimal.Decimal) (*dto.CartTotalsResponse, error) {
	return &dto.CartTotalsResponse{Success: true, Totals: dto.CartTotalsDTO{Discount: discount}}, nil
}

type fakeCoupons struct{}

func (fakeCoupons) Validate(_ context.Context, in dto.ValidateCouponRequest) (*dto.CouponDTO, error) {
	if in.Code != "DIWALI10" {
		return nil, fmt.Errorf("%w: el cupón no existe", domain.ErrCouponInvalid)
	}
	return &dto.CouponDTO{Code: in.Code, DiscountAmount: decimal.NewFromInt(100)}, nil
}
func (fakeCoupons) Create(context.Context, dto.CreateCouponRequest) (*dto.CouponResponse, error) {
	return nil, domain.ErrDuplicate
}
func (fakeCoupons) List(context.Context, int, int) ([]dto.CouponResponse, error) { return nil, nil }

type fakeOrders struct{}

func (fakeOrders) Create(_ context.Context, _ string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.PaymentMethod == entity.PaymentMethodOnline {
		return nil, fmt.Errorf("%w: firma inválida", domain.ErrPaymentVerification)
	}
	return &dto.OrderResponse{Number: "ORD-1", Status: entity.OrderStatusPending, PaymentStatus: entity.PaymentStatusPending}, nil
}
func (fakeOrders) Quote(_ context.Context, _ string, in dto.CreateOrderRequest) (*dto.CheckoutQuoteResponse, error) {
	for _, it := range in.Items {
		if it.Quantity > 2 {
			return nil, fmt.Errorf("lehenga (Red/M): %w", domain.ErrOutOfStock)
		}
	}
	return &dto.CheckoutQuoteResponse{Total: decimal.NewFromInt(6859)}, nil
}
func (fakeOrders) Get(context.Context, string, string, string) (*dto.OrderResponse, error) {
	return nil, domain.ErrForbidden
}
func (fakeOrders) ListMine(context.Context, string, dto.PageRequest) (*dto.OrderListResponse, error) {
	return &dto.OrderListResponse{}, nil
}
func (fakeOrders) List(context.Context, repository.OrderFilter) (*dto.OrderListResponse, error) {
	return &dto.OrderListResponse{}, nil
}
func (fakeOrders) UpdateStatus(context.Context, string, string) (*dto.OrderResponse, error) {
	return nil, fmt.Errorf("%w: delivered → pending", domain.ErrInvalidTransition)
}
func (fakeOrders) InvoicePDF(context.Context, string) ([]byte, string, error) {
	return []byte("%PDF-1.3"), "invoice_ORD-1.pdf", nil
}

type fakeLocations struct{ gotCountry string }

func (f *fakeLocations) Countries() []entity.Country {
	return []entity.Country{{Code: "IN", Name: "India"}}
}
func (f *fakeLocations) States(code string) []entity.State {
	f.gotCountry = code
	return []entity.State{{Code: "GJ", Name: "Gujarat", CountryCode: code}}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type testEnv struct {
	app       *fiber.App
	cart      *fakeCart
	locations *fakeLocations
}

func newTestEnv() *testEnv {
	env := &testEnv{cart: &fakeCart{}, locations: &fakeLocations{}}
	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		CatalogUC: fakeCatalog{},
		CartUC:    env.cart,
		CouponUC:  fakeCoupons{},
		OrderUC:   fakeOrders{},
		Locations: env.locations,
		JWTSecret: testJWTSecret,
	})
	return env
}

func (env *testEnv) do(t *testing.T, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCoupon_RechazoResponde200ConSuccessFalse(t *testing.T) {
	env := newTestEnv()
	resp, raw := env.do(t, http.MethodPost, "/api/coupons/validate", tokenForRole(t, "customer"),
		map[string]any{"code": "NOPE", "orderTotal": "1000"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ValidateCouponResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.False(t, out.Success)
	assert.Nil(t, out.Coupon)
	assert.Contains(t, out.Error, "no existe")
}

func TestCoupon_ValidoDevuelveMonto(t *testing.T) {
	env := newTestEnv()
	_, raw := env.do(t, http.MethodPost, "/api/coupons/validate", tokenForRole(t, "customer"),
		map[string]any{"code": "DIWALI10", "orderTotal": "1000"})

	var out dto.ValidateCouponResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.True(t, out.Success)
	assert.True(t, decimal.NewFromInt(100).Equal(out.Coupon.DiscountAmount))
}

func TestCart_SinToken401(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.do(t, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCart_GetUsaUsuarioDelToken(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.do(t, http.MethodGet, "/api/cart", tokenForRole(t, "customer"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, env.cart.gotUser)
}

func TestCart_AgotadoResponde409(t *testing.T) {
	env := newTestEnv()
	resp, raw := env.do(t, http.MethodPost, "/api/cart", tokenForRole(t, "customer"),
		dto.AddToCartRequest{ProductID: "p1", SelectedColor: "Red", SelectedSize: "M", Quantity: 1})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "OUT_OF_STOCK", out.Code)
	assert.False(t, out.Success)
}

func TestCart_TotalsDescuentoInvalido(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.do(t, http.MethodGet, "/api/cart/totals?discount=abc", tokenForRole(t, "customer"), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := env.do(t, http.MethodGet, "/api/cart/totals?state=Gujarat&discount=50", tokenForRole(t, "customer"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CartTotalsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, decimal.NewFromInt(50).Equal(out.Totals.Discount))
}

func TestOrders_PagoNoVerificado402(t *testing.T) {
	env := newTestEnv()
	resp, raw := env.do(t, http.MethodPost, "/api/orders/create", tokenForRole(t, "customer"),
		map[string]any{"paymentMethod": "online"})

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	assert.Contains(t, string(raw), "PAYMENT_VERIFICATION_FAILED")
}

func TestOrders_ContraEntregaCreado(t *testing.T) {
	env := newTestEnv()
	resp, raw := env.do(t, http.MethodPost, "/api/orders/create", tokenForRole(t, "customer"),
		map[string]any{"paymentMethod": "cod"})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CreateOrderResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "ORD-1", out.Order.Number)
}

func TestOrders_Cotizar(t *testing.T) {
	env := newTestEnv()
	item := func(qty int) map[string]any {
		return map[string]any{"items": []map[string]any{{"productId": "lehenga", "quantity": qty}}}
	}

	resp, raw := env.do(t, http.MethodPost, "/api/orders/quote", tokenForRole(t, "customer"), item(1))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.CheckoutQuoteResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, decimal.NewFromInt(6859).Equal(out.Total))

	resp, raw = env.do(t, http.MethodPost, "/api/orders/quote", tokenForRole(t, "customer"), item(3))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "OUT_OF_STOCK")

	resp, _ = env.do(t, http.MethodPost, "/api/orders/quote", "", item(1))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrders_PedidoAjeno403(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.do(t, http.MethodGet, "/api/orders/o-2", tokenForRole(t, "customer"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdmin_ClienteNoAccede(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.do(t, http.MethodGet, "/api/admin/orders", tokenForRole(t, "customer"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdmin_TransicionInvalida409(t *testing.T) {
	env := newTestEnv()
	resp, raw := env.do(t, http.MethodPatch, "/api/admin/orders/o-1/status", tokenForRole(t, "admin"),
		dto.UpdateOrderStatusRequest{Status: "pending"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "INVALID_TRANSITION")
}

func TestAdmin_FacturaPDF(t *testing.T) {
	env := newTestEnv()
	resp, raw := env.do(t, http.MethodGet, "/api/admin/orders/o-1/invoice", tokenForRole(t, "admin"), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice_ORD-1.pdf")
	assert.Equal(t, "%PDF-1.3", string(raw))
}

func TestAdmin_ProductoInvalido400YDuplicado409(t *testing.T) {
	env := newTestEnv()
	resp, raw := env.do(t, http.MethodPost, "/api/admin/products", tokenForRole(t, "admin"), dto.ProductRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")

	resp, raw = env.do(t, http.MethodPost, "/api/admin/coupons", tokenForRole(t, "admin"), dto.CreateCouponRequest{Code: "X"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), "DUPLICATE")
}

func TestProducts_DetalleDesdeCualquierOrigen(t *testing.T) {
	env := newTestEnv()
	resp, raw := env.do(t, http.MethodGet, "/api/products/trending/red-lehenga", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ProductDetailResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "trending", out.Source)

	resp, _ = env.do(t, http.MethodGet, "/api/products/bestseller/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLocations_EstadosPorDefectoIndia(t *testing.T) {
	env := newTestEnv()
	resp, raw := env.do(t, http.MethodGet, "/api/locations/states", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "IN", env.locations.gotCountry)
	assert.Contains(t, string(raw), "Gujarat")
}
