package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidateCouponRequest body de POST /api/coupons/validate.
type ValidateCouponRequest struct {
	Code       string          `json:"code"`
	OrderTotal decimal.Decimal `json:"orderTotal"`
}

// CouponDTO cupón resuelto: el cliente solo conoce el monto.
type CouponDTO struct {
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// ValidateCouponResponse {success, coupon?, error?}.
type ValidateCouponResponse struct {
	Success bool       `json:"success"`
	Coupon  *CouponDTO `json:"coupon,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// CreateCouponRequest body de POST /api/admin/coupons.
type CreateCouponRequest struct {
	Code          string          `json:"code"`
	Type          string          `json:"type"` // flat | percent
	Value         decimal.Decimal `json:"value"`
	MinOrderTotal decimal.Decimal `json:"minOrderTotal"`
	MaxDiscount   decimal.Decimal `json:"maxDiscount"`
	ValidFrom     *time.Time      `json:"validFrom,omitempty"`
	ValidUntil    *time.Time      `json:"validUntil,omitempty"`
	UsageLimit    int             `json:"usageLimit"`
	Active        *bool           `json:"active,omitempty"`
}

// CouponResponse cupón completo (admin).
type CouponResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Type          string          `json:"type"`
	Value         decimal.Decimal `json:"value"`
	MinOrderTotal decimal.Decimal `json:"minOrderTotal"`
	MaxDiscount   decimal.Decimal `json:"maxDiscount"`
	ValidFrom     *time.Time      `json:"validFrom,omitempty"`
	ValidUntil    *time.Time      `json:"validUntil,omitempty"`
	UsageLimit    int             `json:"usageLimit"`
	UsedCount     int             `json:"usedCount"`
	Active        bool            `json:"active"`
}
