package dto

import "github.com/shopspring/decimal"

// CartLineDTO línea del carrito tal como la consume el frontend.
type CartLineDTO struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Image         string          `json:"image,omitempty"`
	SelectedColor string          `json:"selectedColor"`
	SelectedSize  string          `json:"selectedSize"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	GSTPercent    *decimal.Decimal `json:"gstPercent,omitempty"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
}

// CartResponse respuesta de GET/POST/PATCH/DELETE /api/cart.
type CartResponse struct {
	Success bool          `json:"success"`
	Cart    []CartLineDTO `json:"cart"`
}

// AddToCartRequest body de POST /api/cart.
type AddToCartRequest struct {
	ProductID     string `json:"productId"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
	Quantity      int    `json:"quantity"`
}

// UpdateCartRequest body de PATCH /api/cart.
type UpdateCartRequest struct {
	LineID   string `json:"lineId"`
	Quantity int    `json:"quantity"`
}

// RemoveCartRequest body de DELETE /api/cart.
type RemoveCartRequest struct {
	LineID string `json:"lineId"`
}

// CartTotalsDTO totales con reparto de GST.
type CartTotalsDTO struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	BaseAmount   decimal.Decimal `json:"baseAmount"`
	TotalGST     decimal.Decimal `json:"totalGST"`
	AvgGSTRate   decimal.Decimal `json:"avgGSTRate"`
	IntraState   bool            `json:"intraState"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	CGSTRate     decimal.Decimal `json:"cgstRate"`
	SGSTRate     decimal.Decimal `json:"sgstRate"`
	IGSTRate     decimal.Decimal `json:"igstRate"`
	FinalTotal   decimal.Decimal `json:"finalTotal"`
	DisplayTotal decimal.Decimal `json:"displayTotal"`
	ItemCount    int             `json:"itemCount"`
}

// CartTotalsResponse respuesta de GET /api/cart/totals.
type CartTotalsResponse struct {
	Success bool          `json:"success"`
	Totals  CartTotalsDTO `json:"totals"`
}
