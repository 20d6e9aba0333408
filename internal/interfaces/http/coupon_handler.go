package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
)

// CouponHandler validación pública y alta de cupones.
type CouponHandler struct {
	uc couponService
}

// NewCouponHandler construye el handler.
func NewCouponHandler(uc couponService) *CouponHandler {
	return &CouponHandler{uc: uc}
}

// Validate godoc
// @Summary      Validar cupón
// @Description  Un cupón rechazado responde 200 con success=false y el motivo en error.
// @Tags         coupons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateCouponRequest  true  "code, orderTotal"
// @Success      200  {object}  dto.ValidateCouponResponse
// @Router       /api/coupons/validate [post]
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateCouponRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Validate(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrCouponInvalid) {
			return c.JSON(dto.ValidateCouponResponse{Success: false, Error: err.Error()})
		}
		return respondError(c, err)
	}
	return c.JSON(dto.ValidateCouponResponse{Success: true, Coupon: out})
}

// Create godoc
// @Summary      Crear cupón
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCouponRequest  true  "Cupón"
// @Success      201  {object}  dto.CouponResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/coupons [post]
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCouponRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cupones
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.CouponResponse
// @Router       /api/admin/coupons [get]
func (h *CouponHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
