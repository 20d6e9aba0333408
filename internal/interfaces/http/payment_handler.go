package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
)

// PaymentHandler órdenes y verificación de Razorpay.
type PaymentHandler struct {
	uc paymentService
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc paymentService) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// CreateOrder godoc
// @Summary      Crear orden en la pasarela
// @Tags         payment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentOrderRequest  true  "amount (rupias), currency, receipt"
// @Success      200  {object}  dto.CreatePaymentOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/payment/create-order [post]
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreatePaymentOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateGatewayOrder(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar firma del pago
// @Tags         payment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyPaymentRequest  true  "razorpay_order_id, razorpay_payment_id, razorpay_signature"
// @Success      200  {object}  dto.VerifyPaymentResponse
// @Failure      402  {object}  dto.ErrorResponse
// @Router       /api/payment/verify [post]
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Verify(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.VerifyPaymentResponse{Success: true, Verified: true})
}
