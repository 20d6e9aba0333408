package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
	domaincart "github.com/jhoicas/Storefront-api/internal/domain/cart"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// Session estado del cliente. mu protege los campos; busy serializa las
// operaciones con red (un botón deshabilitado mientras hay una en curso).
type Session struct {
	api      API
	widget   PaymentWidget
	wishlist WishlistStore
	opts     domaincart.Options
	currency string
	log      zerolog.Logger

	mu            sync.Mutex
	initialized   bool
	busy          bool
	cart          []dto.CartLineDTO
	wish          []string
	discount      decimal.Decimal
	appliedCoupon string
}

// NewSession construye una sesión aislada; llamar Init antes de usarla.
func NewSession(api API, widget PaymentWidget, wishlist WishlistStore, log zerolog.Logger) *Session {
	return &Session{
		api:      api,
		widget:   widget,
		wishlist: wishlist,
		opts:     domaincart.DefaultOptions(),
		currency: "INR",
		log:      log.With().Str("component", "storefront").Logger(),
	}
}

// WithOptions cambia estado vendedor, GST por defecto y envío.
func (s *Session) WithOptions(opts domaincart.Options) *Session {
	s.opts = opts
	return s
}

// Init rehidrata carrito (servidor) y lista de deseos (local). Solo la primera llamada tiene efecto.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	wish, err := s.wishlist.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer la lista de deseos; se inicia vacía")
		wish = nil
	}
	lines, err := s.api.GetCart(ctx)
	if err != nil {
		return fmt.Errorf("storefront: cargar carrito: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = lines
	s.wish = wish
	s.initialized = true
	return nil
}

// Close descarta el estado en memoria. La lista de deseos ya está persistida.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.wish = nil
	s.discount = decimal.Zero
	s.appliedCoupon = ""
	s.initialized = false
}

// begin marca la sesión ocupada; ErrBusy si ya hay una operación en curso.
func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// Busy indica si hay una operación en curso.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Cart copia de las líneas actuales.
func (s *Session) Cart() []dto.CartLineDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dto.CartLineDTO(nil), s.cart...)
}

// Coupon código aplicado y su descuento.
func (s *Session) Coupon() (code string, discount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appliedCoupon, s.discount
}

// refresh vuelve a pedir el carrito al servidor; nunca se mezcla localmente.
func (s *Session) refresh(ctx context.Context) error {
	lines, err := s.api.GetCart(ctx)
	if err != nil {
		return fmt.Errorf("storefront: recargar carrito: %w", err)
	}
	s.mu.Lock()
	s.cart = lines
	s.mu.Unlock()
	return nil
}

// mutate ejecuta una llamada que modifica el carrito y luego lo recarga.
func (s *Session) mutate(ctx context.Context, op string, call func() error) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()
	if err := call(); err != nil {
		s.log.Warn().Err(err).Str("op", op).Msg("operación de carrito rechazada")
		return err
	}
	return s.refresh(ctx)
}

// AddToCart agrega la selección y recarga el carrito.
func (s *Session) AddToCart(ctx context.Context, in dto.AddToCartRequest) error {
	if in.ProductID == "" || in.SelectedColor == "" || in.SelectedSize == "" || in.Quantity < 1 {
		return fmt.Errorf("%w: producto, color, talla y cantidad son requeridos", domain.ErrInvalidInput)
	}
	return s.mutate(ctx, "add", func() error { return s.api.AddToCart(ctx, in) })
}

// UpdateQuantity cambia la cantidad de una línea.
func (s *Session) UpdateQuantity(ctx context.Context, lineID string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: la cantidad mínima es 1", domain.ErrInvalidInput)
	}
	return s.mutate(ctx, "update", func() error {
		return s.api.UpdateCart(ctx, dto.UpdateCartRequest{LineID: lineID, Quantity: qty})
	})
}

// RemoveLine quita una línea del carrito.
func (s *Session) RemoveLine(ctx context.Context, lineID string) error {
	return s.mutate(ctx, "remove", func() error { return s.api.RemoveFromCart(ctx, lineID) })
}

func (s *Session) subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.cart {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (s *Session) clearCoupon() {
	s.discount = decimal.Zero
	s.appliedCoupon = ""
}

// ApplyCoupon valida el código contra el subtotal actual. En éxito guarda
// código y monto; en cualquier fallo limpia ambos y devuelve el mensaje.
func (s *Session) ApplyCoupon(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: ingrese un código", domain.ErrCouponInvalid)
	}
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	total := s.subtotal()
	s.mu.Unlock()

	resp, err := s.api.ValidateCoupon(ctx, dto.ValidateCouponRequest{Code: code, OrderTotal: total})

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err != nil:
		s.clearCoupon()
		return fmt.Errorf("storefront: validar cupón: %w", err)
	case !resp.Success || resp.Coupon == nil:
		s.clearCoupon()
		msg := resp.Error
		if msg == "" {
			msg = "cupón no válido"
		}
		return fmt.Errorf("%w: %s", domain.ErrCouponInvalid, msg)
	}
	s.discount = resp.Coupon.DiscountAmount
	s.appliedCoupon = resp.Coupon.Code
	return nil
}

// RemoveCoupon deja el descuento en 0. Idempotente.
func (s *Session) RemoveCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCoupon()
}

// Totals calcula los totales del carrito actual para el estado del comprador.
func (s *Session) Totals(buyerState string) domaincart.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalsLocked(buyerState)
}

func (s *Session) totalsLocked(buyerState string) domaincart.Totals {
	lines := make([]entity.CartLine, 0, len(s.cart))
	for _, l := range s.cart {
		lines = append(lines, entity.CartLine{
			ID:            l.ID,
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			SelectedColor: l.SelectedColor,
			SelectedSize:  l.SelectedSize,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			GSTPercent:    l.GSTPercent,
		})
	}
	return domaincart.Aggregate(lines, s.discount, buyerState, s.opts)
}

// validateForm rechaza localmente, antes de cualquier llamada de red.
func validateForm(form CheckoutForm, lines int) error {
	if lines == 0 {
		return domain.ErrEmptyCart
	}
	var missing []string
	check := func(v, name string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check(form.Customer.Name, "nombre")
	check(form.Customer.Email, "email")
	check(form.Customer.Phone, "teléfono")
	check(form.ShippingAddress.Line1, "dirección")
	check(form.ShippingAddress.City, "ciudad")
	check(form.ShippingAddress.State, "estado")
	check(form.ShippingAddress.PostalCode, "código postal")
	if len(missing) > 0 {
		return fmt.Errorf("%w: faltan campos: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	switch form.PaymentMethod {
	case entity.PaymentMethodCOD, entity.PaymentMethodOnline:
		return nil
	default:
		return fmt.Errorf("%w: método de pago %q no soportado", domain.ErrInvalidInput, form.PaymentMethod)
	}
}

// Checkout envía el pedido. cod: se crea directo (pago pendiente). online:
// cotización → orden en la pasarela → widget → verificación → pedido. Si el usuario cierra
// el widget o la verificación falla, no se crea pedido y el carrito se conserva.
func (s *Session) Checkout(ctx context.Context, form CheckoutForm) (*dto.OrderResponse, error) {
	s.mu.Lock()
	lines := append([]dto.CartLineDTO(nil), s.cart...)
	coupon := s.appliedCoupon
	totals := s.totalsLocked(form.ShippingAddress.State)
	s.mu.Unlock()

	if err := validateForm(form, len(lines)); err != nil {
		return nil, err
	}
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	req := dto.CreateOrderRequest{
		Customer:        form.Customer,
		ShippingAddress: form.ShippingAddress,
		BillingAddress:  form.BillingAddress,
		CouponCode:      coupon,
		PaymentMethod:   form.PaymentMethod,
	}
	for _, l := range lines {
		req.Items = append(req.Items, dto.OrderItemRequest{
			ProductID:     l.ProductID,
			SelectedColor: l.SelectedColor,
			SelectedSize:  l.SelectedSize,
			Quantity:      l.Quantity,
		})
	}

	if form.PaymentMethod == entity.PaymentMethodOnline {
		if err := s.payOnline(ctx, form, totals, &req); err != nil {
			return nil, err
		}
	}

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Str("payment_method", form.PaymentMethod).Msg("creación de pedido fallida")
		return nil, fmt.Errorf("storefront: crear pedido: %w", err)
	}
	s.log.Info().Str("order", order.Number).Str("payment_status", order.PaymentStatus).Msg("pedido creado")

	// El servidor vacía el carrito en la misma transacción; se recarga para reflejarlo.
	if err := s.refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo recargar el carrito tras el pedido")
		s.mu.Lock()
		s.cart = nil
		s.mu.Unlock()
	}
	s.mu.Lock()
	s.clearCoupon()
	s.mu.Unlock()
	return order, nil
}

// payOnline cotiza el pedido en el servidor antes de abrir el widget: stock y
// precios se validan sin cobrar, y el monto de la pasarela es el total del
// servidor, no el de las líneas en memoria.
func (s *Session) payOnline(ctx context.Context, form CheckoutForm, totals domaincart.Totals, req *dto.CreateOrderRequest) error {
	quote, err := s.api.QuoteOrder(ctx, *req)
	if err != nil {
		return fmt.Errorf("storefront: cotizar pedido: %w", err)
	}
	if !quote.Total.Equal(totals.FinalTotal) {
		s.log.Warn().
			Str("local", totals.FinalTotal.StringFixed(2)).
			Str("server", quote.Total.StringFixed(2)).
			Msg("el total del carrito cambió; se cobra el del servidor")
	}

	gw, err := s.api.CreatePaymentOrder(ctx, dto.CreatePaymentOrderRequest{
		Amount:   quote.Total,
		Currency: s.currency,
	})
	if err != nil {
		return fmt.Errorf("storefront: crear orden de pago: %w", err)
	}

	res, err := s.widget.Open(ctx, WidgetRequest{KeyID: gw.RazorpayKeyID, Order: gw.Order, Customer: form.Customer})
	if err != nil {
		if errors.Is(err, ErrPaymentDismissed) {
			s.log.Info().Str("gateway_order", gw.Order.ID).Msg("pago cancelado por el usuario")
			return ErrPaymentDismissed
		}
		return fmt.Errorf("storefront: widget de pago: %w", err)
	}

	verify := dto.VerifyPaymentRequest{
		RazorpayOrderID:   res.OrderID,
		RazorpayPaymentID: res.PaymentID,
		RazorpaySignature: res.Signature,
	}
	if err := s.api.VerifyPayment(ctx, verify); err != nil {
		s.log.Warn().Err(err).Str("gateway_order", res.OrderID).Msg("verificación de pago fallida")
		return fmt.Errorf("%w: %v", domain.ErrPaymentVerification, err)
	}
	req.RazorpayOrderID = res.OrderID
	req.RazorpayPaymentID = res.PaymentID
	req.RazorpaySignature = res.Signature
	return nil
}
