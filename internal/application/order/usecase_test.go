package order_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/application/order"
	"github.com/jhoicas/Storefront-api/internal/domain"
	domaincart "github.com/jhoicas/Storefront-api/internal/domain/cart"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeProducts struct {
	items map[string]*entity.Product
}

func (f *fakeProducts) Create(context.Context, *entity.Product) error { return nil }
func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Variations = append([]entity.Variation(nil), p.Variations...)
	return &cp, nil
}
func (f *fakeProducts) GetBySlug(context.Context, string) (*entity.Product, error) { return nil, nil }
func (f *fakeProducts) Update(context.Context, *entity.Product) error              { return nil }
func (f *fakeProducts) List(context.Context, repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProducts) Delete(context.Context, string) error { return nil }
func (f *fakeProducts) DecrementStock(_ context.Context, id, color, size string, qty int) error {
	p := f.items[id]
	for i := range p.Variations {
		v := &p.Variations[i]
		if v.Color == color && v.Size == size {
			if v.Stock < qty {
				return domain.ErrOutOfStock
			}
			v.Stock -= qty
			return nil
		}
	}
	return domain.ErrOutOfStock
}

type fakeOrders struct {
	items map[string]*entity.Order
}

func (f *fakeOrders) Create(_ context.Context, o *entity.Order) error {
	for _, prev := range f.items {
		if o.GatewayPaymentID != "" && prev.GatewayPaymentID == o.GatewayPaymentID {
			return fmt.Errorf("%w: pago %s", domain.ErrConflict, o.GatewayPaymentID)
		}
		if o.GatewayOrderID != "" && prev.GatewayOrderID == o.GatewayOrderID {
			return fmt.Errorf("%w: orden %s", domain.ErrConflict, o.GatewayOrderID)
		}
	}
	f.items[o.ID] = o
	return nil
}
func (f *fakeOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return f.items[id], nil
}
func (f *fakeOrders) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.items {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
func (f *fakeOrders) UpdateStatus(_ context.Context, o *entity.Order) error {
	f.items[o.ID] = o
	return nil
}

type fakeCart struct {
	cleared []string
}

func (f *fakeCart) ListByUser(context.Context, string) ([]*entity.CartLine, error) { return nil, nil }
func (f *fakeCart) GetLine(context.Context, string, string) (*entity.CartLine, error) {
	return nil, nil
}
func (f *fakeCart) FindLine(context.Context, string, string, string, string) (*entity.CartLine, error) {
	return nil, nil
}
func (f *fakeCart) AddLine(context.Context, *entity.CartLine) error                { return nil }
func (f *fakeCart) UpdateQuantity(context.Context, string, string, int) error      { return nil }
func (f *fakeCart) DeleteLine(context.Context, string, string) error               { return nil }
func (f *fakeCart) ClearByUser(_ context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

type fakeCouponRepo struct {
	used map[string]int
}

func (f *fakeCouponRepo) Create(context.Context, *entity.Coupon) error { return nil }
func (f *fakeCouponRepo) GetByCode(context.Context, string) (*entity.Coupon, error) {
	return nil, nil
}
func (f *fakeCouponRepo) List(context.Context, int, int) ([]*entity.Coupon, error) { return nil, nil }
func (f *fakeCouponRepo) IncrementUsage(_ context.Context, code string) error {
	f.used[code]++
	return nil
}

type fakeTx struct {
	products *fakeProducts
	orders   *fakeOrders
	carts    *fakeCart
	coupons  *fakeCouponRepo
	// beforeRun simula otra compra que entra entre la cotización y la transacción.
	beforeRun func()
}

// RunCheckout restaura el stock si fn falla, como el rollback de la base.
func (tx *fakeTx) RunCheckout(_ context.Context, fn func(repository.ProductRepository, repository.OrderRepository, repository.CartRepository, repository.CouponRepository) error) error {
	if tx.beforeRun != nil {
		tx.beforeRun()
	}
	saved := map[string][]entity.Variation{}
	for id, p := range tx.products.items {
		saved[id] = append([]entity.Variation(nil), p.Variations...)
	}
	err := fn(tx.products, tx.orders, tx.carts, tx.coupons)
	if err != nil {
		for id, vs := range saved {
			tx.products.items[id].Variations = vs
		}
	}
	return err
}

type fakeCoupons struct{}

func (fakeCoupons) Validate(_ context.Context, in dto.ValidateCouponRequest) (*dto.CouponDTO, error) {
	if in.Code != "FLAT100" {
		return nil, domain.ErrCouponInvalid
	}
	return &dto.CouponDTO{Code: in.Code, DiscountAmount: d("100")}, nil
}

// fakeVerifier acepta la firma "ok". paid es lo que cobró la pasarela; cero
// significa que coincide con el total pedido.
type fakeVerifier struct {
	calls   int
	paid    decimal.Decimal
	checked []decimal.Decimal
}

func (f *fakeVerifier) Verify(_ context.Context, in dto.VerifyPaymentRequest) error {
	f.calls++
	if in.RazorpaySignature != "ok" {
		return domain.ErrPaymentVerification
	}
	return nil
}

func (f *fakeVerifier) CheckAmount(_ context.Context, _ string, total decimal.Decimal) error {
	f.checked = append(f.checked, total)
	if !f.paid.IsZero() && !f.paid.Equal(total) {
		return fmt.Errorf("%w: cobrado %s, pedido %s", domain.ErrPaymentVerification, f.paid, total)
	}
	return nil
}

type fakePDF struct{ got *entity.Order }

func (f *fakePDF) GenerateOrderInvoice(_ context.Context, o *entity.Order, _ order.StoreInfo) ([]byte, error) {
	f.got = o
	return []byte("%PDF-1.4"), nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type env struct {
	uc       *order.OrderUseCase
	tx       *fakeTx
	verifier *fakeVerifier
	pdf      *fakePDF
}

func newEnv() *env {
	products := &fakeProducts{items: map[string]*entity.Product{
		"lehenga": {
			ID: "lehenga", Name: "Lehenga", GSTPercent: "12%",
			Pricing:    entity.PricingSnapshot{FinalInvoiceValue: d("4499")},
			Variations: []entity.Variation{{Color: "Red", Size: "M", Stock: 2}},
		},
		"blouse": {
			ID: "blouse", Name: "Blouse",
			Pricing:    entity.PricingSnapshot{FinalInvoiceValue: d("1180")},
			Variations: []entity.Variation{{Color: "Gold", Size: "S", Stock: 5}},
		},
	}}
	tx := &fakeTx{
		products: products,
		orders:   &fakeOrders{items: map[string]*entity.Order{}},
		carts:    &fakeCart{},
		coupons:  &fakeCouponRepo{used: map[string]int{}},
	}
	v := &fakeVerifier{}
	pdf := &fakePDF{}
	uc := order.NewOrderUseCase(order.Deps{
		Orders:   tx.orders,
		Products: products,
		Tx:       tx,
		Coupons:  fakeCoupons{},
		Payments: v,
		PDF:      pdf,
		Options:  domaincart.DefaultOptions(),
		Store:    order.StoreInfo{Name: "Tienda"},
	}, zerolog.Nop())
	return &env{uc: uc, tx: tx, verifier: v, pdf: pdf}
}

func checkout(method string) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Customer: entity.CustomerInfo{Name: "Asha", Email: "asha@example.com", Phone: "9999999999"},
		ShippingAddress: entity.Address{
			FullName: "Asha", Line1: "12 MG Road", City: "Ahmedabad", State: "Gujarat", PostalCode: "380001", Country: "IN",
		},
		Items: []dto.OrderItemRequest{
			{ProductID: "lehenga", SelectedColor: "Red", SelectedSize: "M", Quantity: 1},
			{ProductID: "blouse", SelectedColor: "Gold", SelectedSize: "S", Quantity: 2},
		},
		PaymentMethod: method,
	}
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestCreate_COD(t *testing.T) {
	e := newEnv()
	out, err := e.uc.Create(context.Background(), "u1", checkout(entity.PaymentMethodCOD))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.Number, "ORD-"))
	assert.Equal(t, entity.PaymentStatusPending, out.PaymentStatus)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.True(t, out.Subtotal.Equal(d("6859")))
	assert.True(t, out.Total.Equal(d("6859")))
	assert.True(t, out.Tax.CGST.Equal(out.Tax.SGST))
	assert.True(t, out.Tax.IGST.IsZero())
	assert.Equal(t, out.ShippingAddress, out.BillingAddress)
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].GSTPercent.Equal(d("12")))
	assert.True(t, out.Items[1].GSTPercent.Equal(d("18")), "sin GST usa la tasa por defecto")

	assert.Equal(t, []string{"u1"}, e.tx.carts.cleared)
	assert.Equal(t, 1, e.tx.products.items["lehenga"].Variations[0].Stock)
	assert.Equal(t, 3, e.tx.products.items["blouse"].Variations[0].Stock)
	assert.Zero(t, e.verifier.calls)
}

func TestCreate_ConCupon(t *testing.T) {
	e := newEnv()
	in := checkout(entity.PaymentMethodCOD)
	in.CouponCode = "flat100"
	out, err := e.uc.Create(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.Equal(t, "FLAT100", out.CouponCode)
	assert.True(t, out.Discount.Equal(d("100")))
	assert.True(t, out.Total.Equal(d("6759")))
	assert.Equal(t, 1, e.tx.coupons.used["FLAT100"])

	in.CouponCode = "NOPE"
	_, err = e.uc.Create(context.Background(), "u1", in)
	assert.True(t, errors.Is(err, domain.ErrCouponInvalid))
}

func TestCreate_OnlineVerificado(t *testing.T) {
	e := newEnv()
	in := checkout(entity.PaymentMethodOnline)
	in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature = "order_1", "pay_1", "ok"
	out, err := e.uc.Create(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCompleted, out.PaymentStatus)
	assert.Equal(t, "pay_1", out.GatewayPaymentID)
	assert.Equal(t, 1, e.verifier.calls)
	require.Len(t, e.verifier.checked, 1)
	assert.True(t, e.verifier.checked[0].Equal(d("6859")), "se compara contra el total del servidor")
}

func onlineCheckout() dto.CreateOrderRequest {
	in := checkout(entity.PaymentMethodOnline)
	in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature = "order_1", "pay_1", "ok"
	return in
}

func ordersWith(e *env, paymentStatus string) []*entity.Order {
	var out []*entity.Order
	for _, o := range e.tx.orders.items {
		if o.PaymentStatus == paymentStatus {
			out = append(out, o)
		}
	}
	return out
}

func TestCreate_PagoReutilizadoLiquidaUnSoloPedido(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.uc.Create(ctx, "u1", onlineCheckout())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = e.uc.Create(ctx, "u1", onlineCheckout())
		assert.True(t, errors.Is(err, domain.ErrConflict), "intento %d: %v", i, err)
	}
	assert.Len(t, e.tx.orders.items, 1)
	assert.Equal(t, 1, e.tx.products.items["lehenga"].Variations[0].Stock, "el stock se descuenta una vez")
	assert.Equal(t, []string{"u1"}, e.tx.carts.cleared)
}

func TestCreate_MontoCobradoDistintoAlTotal(t *testing.T) {
	e := newEnv()
	e.verifier.paid = d("1")
	_, err := e.uc.Create(context.Background(), "u1", onlineCheckout())
	assert.True(t, errors.Is(err, domain.ErrPaymentVerification), "error: %v", err)

	assert.Empty(t, ordersWith(e, entity.PaymentStatusCompleted))
	held := ordersWith(e, entity.PaymentStatusRefundPending)
	require.Len(t, held, 1)
	assert.Equal(t, entity.OrderStatusCancelled, held[0].Status)
	assert.Equal(t, "pay_1", held[0].GatewayPaymentID)
	assert.Equal(t, 2, e.tx.products.items["lehenga"].Variations[0].Stock)
	assert.Empty(t, e.tx.carts.cleared)
}

func TestCreate_PagoVerificadoSinStock(t *testing.T) {
	e := newEnv()
	in := onlineCheckout()
	in.Items[0].Quantity = 3
	_, err := e.uc.Create(context.Background(), "u1", in)
	assert.True(t, errors.Is(err, domain.ErrOutOfStock), "error: %v", err)
	assert.Contains(t, err.Error(), "pendiente de reembolso")

	held := ordersWith(e, entity.PaymentStatusRefundPending)
	require.Len(t, held, 1)
	assert.Equal(t, entity.OrderStatusCancelled, held[0].Status)
	assert.Equal(t, "asha@example.com", held[0].Customer.Email)
	assert.Empty(t, e.tx.carts.cleared, "el carrito se conserva")
	assert.Empty(t, e.verifier.checked, "sin pedido no hay monto que comparar")

	// el mismo pago no puede reintentarse como pedido nuevo
	in.Items[0].Quantity = 1
	_, err = e.uc.Create(context.Background(), "u1", in)
	assert.True(t, errors.Is(err, domain.ErrConflict), "error: %v", err)
	assert.Empty(t, ordersWith(e, entity.PaymentStatusCompleted))
}

func TestCreate_StockAgotadoDuranteLaTransaccion(t *testing.T) {
	e := newEnv()
	e.tx.beforeRun = func() { e.tx.products.items["lehenga"].Variations[0].Stock = 0 }
	_, err := e.uc.Create(context.Background(), "u1", onlineCheckout())
	assert.True(t, errors.Is(err, domain.ErrOutOfStock), "error: %v", err)

	held := ordersWith(e, entity.PaymentStatusRefundPending)
	require.Len(t, held, 1)
	assert.Len(t, held[0].Items, 2)
	assert.True(t, held[0].Total.Equal(d("6859")))
	assert.Zero(t, e.tx.coupons.used["FLAT100"])
	assert.Empty(t, e.tx.carts.cleared)
}

func TestCreate_CODSinStockNoDejaRegistro(t *testing.T) {
	e := newEnv()
	e.tx.beforeRun = func() { e.tx.products.items["blouse"].Variations[0].Stock = 0 }
	_, err := e.uc.Create(context.Background(), "u1", checkout(entity.PaymentMethodCOD))
	assert.True(t, errors.Is(err, domain.ErrOutOfStock))
	assert.Empty(t, e.tx.orders.items)
	assert.Equal(t, 2, e.tx.products.items["lehenga"].Variations[0].Stock, "rollback del stock")
}

func TestQuote(t *testing.T) {
	e := newEnv()
	in := checkout(entity.PaymentMethodOnline)
	in.CouponCode = "FLAT100"
	q, err := e.uc.Quote(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(d("6759")))
	assert.True(t, q.Discount.Equal(d("100")))
	assert.Equal(t, "FLAT100", q.CouponCode)
	assert.Len(t, q.Items, 2)

	assert.Empty(t, e.tx.orders.items)
	assert.Empty(t, e.tx.carts.cleared)
	assert.Zero(t, e.tx.coupons.used["FLAT100"])
	assert.Equal(t, 2, e.tx.products.items["lehenga"].Variations[0].Stock)
	assert.Zero(t, e.verifier.calls)

	in.Items[0].Quantity = 3
	_, err = e.uc.Quote(context.Background(), "u1", in)
	assert.True(t, errors.Is(err, domain.ErrOutOfStock))

	in.Items = nil
	_, err = e.uc.Quote(context.Background(), "u1", in)
	assert.True(t, errors.Is(err, domain.ErrEmptyCart))
}

func TestCreate_OnlineFirmaInvalidaNoCreaPedido(t *testing.T) {
	e := newEnv()
	in := checkout(entity.PaymentMethodOnline)
	in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature = "order_1", "pay_1", "forged"
	_, err := e.uc.Create(context.Background(), "u1", in)
	assert.True(t, errors.Is(err, domain.ErrPaymentVerification))
	assert.Empty(t, e.tx.orders.items)
	assert.Empty(t, e.tx.carts.cleared, "el carrito se conserva")
}

func TestCreate_CompuertaDeValidacion(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateOrderRequest)
		want   error
	}{
		{"sin líneas", func(r *dto.CreateOrderRequest) { r.Items = nil }, domain.ErrEmptyCart},
		{"sin teléfono", func(r *dto.CreateOrderRequest) { r.Customer.Phone = "" }, domain.ErrInvalidInput},
		{"sin ciudad", func(r *dto.CreateOrderRequest) { r.ShippingAddress.City = " " }, domain.ErrInvalidInput},
		{"método desconocido", func(r *dto.CreateOrderRequest) { r.PaymentMethod = "upi" }, domain.ErrInvalidInput},
		{"online sin firma", func(r *dto.CreateOrderRequest) { r.PaymentMethod = entity.PaymentMethodOnline }, domain.ErrPaymentVerification},
		{"cantidad cero", func(r *dto.CreateOrderRequest) { r.Items[0].Quantity = 0 }, domain.ErrInvalidInput},
		{"sin stock", func(r *dto.CreateOrderRequest) { r.Items[0].Quantity = 3 }, domain.ErrOutOfStock},
		{"producto inexistente", func(r *dto.CreateOrderRequest) { r.Items[0].ProductID = "x" }, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			in := checkout(entity.PaymentMethodCOD)
			tt.mutate(&in)
			_, err := e.uc.Create(context.Background(), "u1", in)
			assert.True(t, errors.Is(err, tt.want), "error: %v", err)
			assert.Empty(t, e.tx.orders.items)
			assert.Empty(t, e.tx.carts.cleared)
			assert.Zero(t, e.verifier.calls)
		})
	}
}

func TestCreate_IGSTFueraDelEstado(t *testing.T) {
	e := newEnv()
	in := checkout(entity.PaymentMethodCOD)
	in.ShippingAddress.State = "Maharashtra"
	out, err := e.uc.Create(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.True(t, out.Tax.CGST.IsZero())
	assert.True(t, out.Tax.IGST.Equal(out.Tax.TotalGST))
}

func TestGet_SoloDuenoOAdmin(t *testing.T) {
	e := newEnv()
	out, err := e.uc.Create(context.Background(), "u1", checkout(entity.PaymentMethodCOD))
	require.NoError(t, err)

	_, err = e.uc.Get(context.Background(), "u1", entity.RoleCustomer, out.ID)
	assert.NoError(t, err)
	_, err = e.uc.Get(context.Background(), "u2", entity.RoleCustomer, out.ID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	_, err = e.uc.Get(context.Background(), "admin", entity.RoleAdmin, out.ID)
	assert.NoError(t, err)
	_, err = e.uc.Get(context.Background(), "u1", entity.RoleCustomer, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	list, err := e.uc.ListMine(context.Background(), "u2", dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestUpdateStatus_Transiciones(t *testing.T) {
	e := newEnv()
	out, err := e.uc.Create(context.Background(), "u1", checkout(entity.PaymentMethodCOD))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = e.uc.UpdateStatus(ctx, out.ID, entity.OrderStatusShipped)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "pending no salta a shipped")

	for _, s := range []string{entity.OrderStatusConfirmed, entity.OrderStatusProcessing, entity.OrderStatusShipped, entity.OrderStatusDelivered} {
		got, err := e.uc.UpdateStatus(ctx, out.ID, s)
		require.NoError(t, err, s)
		assert.Equal(t, s, got.Status)
	}

	_, err = e.uc.UpdateStatus(ctx, out.ID, entity.OrderStatusCancelled)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "entregado no se cancela")

	_, err = e.uc.UpdateStatus(ctx, out.ID, "lost")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestInvoicePDF(t *testing.T) {
	e := newEnv()
	out, err := e.uc.Create(context.Background(), "u1", checkout(entity.PaymentMethodCOD))
	require.NoError(t, err)

	b, name, err := e.uc.InvoicePDF(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
	assert.Equal(t, "invoice_"+out.Number+".pdf", name)
	assert.Equal(t, out.ID, e.pdf.got.ID)

	_, _, err = e.uc.InvoicePDF(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
