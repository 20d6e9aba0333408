package order

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

// validateCheckout compuerta previa a crear el pedido: el formulario y, para
// pagos online, los datos del pago.
func validateCheckout(in dto.CreateOrderRequest) error {
	if err := validateForm(in); err != nil {
		return err
	}
	if in.PaymentMethod == entity.PaymentMethodOnline &&
		(in.RazorpayOrderID == "" || in.RazorpayPaymentID == "" || in.RazorpaySignature == "") {
		return fmt.Errorf("%w: pago online sin verificar", domain.ErrPaymentVerification)
	}
	return nil
}

// validateForm datos de contacto, dirección, líneas y método de pago.
func validateForm(in dto.CreateOrderRequest) error {
	if len(in.Items) == 0 {
		return domain.ErrEmptyCart
	}
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("customer.name", in.Customer.Name)
	check("customer.email", in.Customer.Email)
	check("customer.phone", in.Customer.Phone)
	check("shippingAddress.line1", in.ShippingAddress.Line1)
	check("shippingAddress.city", in.ShippingAddress.City)
	check("shippingAddress.state", in.ShippingAddress.State)
	check("shippingAddress.postal_code", in.ShippingAddress.PostalCode)
	if len(missing) > 0 {
		return fmt.Errorf("%w: faltan campos obligatorios: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	for i, it := range in.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			return fmt.Errorf("%w: línea %d inválida", domain.ErrInvalidInput, i)
		}
	}

	switch in.PaymentMethod {
	case entity.PaymentMethodCOD, entity.PaymentMethodOnline:
	default:
		return fmt.Errorf("%w: método de pago %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	return nil
}
