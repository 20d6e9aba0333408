// Package payment crea órdenes en la pasarela y verifica las firmas de pago.
package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
)

// DefaultCurrency moneda de la tienda.
const DefaultCurrency = "INR"

var hundred = decimal.NewFromInt(100)

// PaymentUseCase casos de uso de la pasarela.
type PaymentUseCase struct {
	gw       Gateway
	currency string
	log      zerolog.Logger
}

// NewPaymentUseCase construye el caso de uso. currency vacío usa INR.
func NewPaymentUseCase(gw Gateway, currency string, log zerolog.Logger) *PaymentUseCase {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &PaymentUseCase{gw: gw, currency: currency, log: log}
}

// ToMinorUnits convierte rupias a paise redondeando al entero más cercano.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// NewReceipt genera un recibo ordenable por tiempo para la pasarela.
func NewReceipt() string {
	return "rcpt_" + strings.ToLower(ulid.Make().String())
}

// CreateGatewayOrder crea la orden de pago y devuelve la key pública para el widget.
func (uc *PaymentUseCase) CreateGatewayOrder(ctx context.Context, in dto.CreatePaymentOrderRequest) (*dto.CreatePaymentOrderResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrInvalidInput)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = uc.currency
	}
	receipt := strings.TrimSpace(in.Receipt)
	if receipt == "" {
		receipt = NewReceipt()
	}

	o, err := uc.gw.CreateOrder(ctx, ToMinorUnits(in.Amount), currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("payment: crear orden en pasarela: %w", err)
	}
	uc.log.Info().Str("gateway_order", o.ID).Int64("amount", o.Amount).Msg("orden de pago creada")
	return &dto.CreatePaymentOrderResponse{
		Order: dto.GatewayOrderDTO{
			ID:       o.ID,
			Amount:   o.Amount,
			Currency: o.Currency,
			Receipt:  o.Receipt,
			Status:   o.Status,
		},
		RazorpayKeyID: uc.gw.KeyID(),
	}, nil
}

// Verify comprueba la firma del pago; cualquier fallo es domain.ErrPaymentVerification.
func (uc *PaymentUseCase) Verify(_ context.Context, in dto.VerifyPaymentRequest) error {
	if in.RazorpayOrderID == "" || in.RazorpayPaymentID == "" || in.RazorpaySignature == "" {
		return fmt.Errorf("%w: faltan datos del pago", domain.ErrPaymentVerification)
	}
	if !uc.gw.VerifySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature) {
		uc.log.Warn().
			Str("gateway_order", in.RazorpayOrderID).
			Str("payment", in.RazorpayPaymentID).
			Msg("firma de pago inválida")
		return domain.ErrPaymentVerification
	}
	return nil
}

// CheckAmount confirma que la orden de pasarela cobra exactamente total en la
// moneda de la tienda. El monto se lee de la pasarela, nunca del cliente.
func (uc *PaymentUseCase) CheckAmount(ctx context.Context, gatewayOrderID string, total decimal.Decimal) error {
	o, err := uc.gw.FetchOrder(ctx, gatewayOrderID)
	if err != nil {
		return fmt.Errorf("%w: consultar orden de pago: %v", domain.ErrPaymentVerification, err)
	}
	want := ToMinorUnits(total)
	if o.Amount != want || !strings.EqualFold(o.Currency, uc.currency) {
		uc.log.Warn().
			Str("gateway_order", gatewayOrderID).
			Int64("paid", o.Amount).
			Int64("expected", want).
			Str("currency", o.Currency).
			Msg("el monto cobrado no coincide con el pedido")
		return fmt.Errorf("%w: la orden de pago cobra %d %s y el pedido suma %d %s",
			domain.ErrPaymentVerification, o.Amount, o.Currency, want, uc.currency)
	}
	return nil
}
