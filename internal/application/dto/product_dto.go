package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariationDTO combinación color/talla.
type VariationDTO struct {
	Color         string          `json:"color"`
	Size          string          `json:"size"`
	Stock         int             `json:"stock"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
	SKU           string          `json:"sku,omitempty"`
}

// ProductRequest body para crear o reemplazar un producto (admin).
type ProductRequest struct {
	Name                string          `json:"name"`
	Slug                string          `json:"slug"`
	Category            string          `json:"category"`
	Collections         []string        `json:"collections"`
	Images              []string        `json:"images"`
	Description         string          `json:"description"`
	BasePurchasePrice   decimal.Decimal `json:"basePurchasePrice"`
	TransportCost       decimal.Decimal `json:"transportCost"`
	OtherCost           decimal.Decimal `json:"otherCost"`
	ProfitMarginPercent decimal.Decimal `json:"profitMarginPercent"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	DiscountReason      string          `json:"discountReason"`
	GSTPercent          string          `json:"gstPercent"` // "5%", "12%"...
	Variations          []VariationDTO  `json:"variations"`
}

// PricingPreviewRequest campos del formulario de edición que disparan el recálculo.
type PricingPreviewRequest struct {
	BasePurchasePrice   decimal.Decimal `json:"basePurchasePrice"`
	TransportCost       decimal.Decimal `json:"transportCost"`
	OtherCost           decimal.Decimal `json:"otherCost"`
	ProfitMarginPercent decimal.Decimal `json:"profitMarginPercent"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	GSTPercent          string          `json:"gstPercent"`
}

// PricingResponse derivación de precios. DisplayPrice es el único valor redondeado.
type PricingResponse struct {
	LandedCost            decimal.Decimal `json:"landedCost"`
	SellingPriceBeforeGST decimal.Decimal `json:"sellingPriceBeforeGST"`
	TaxableValue          decimal.Decimal `json:"taxableValue"`
	GSTRate               decimal.Decimal `json:"gstRate"`
	FinalInvoiceValue     decimal.Decimal `json:"finalInvoiceValue"`
	DisplayPrice          decimal.Decimal `json:"displayPrice"`
	DiscountLabel         string          `json:"discountLabel,omitempty"`
	GSTWarning            string          `json:"gstWarning,omitempty"`
}

// ProductResponse producto completo (admin).
type ProductResponse struct {
	ID                  string          `json:"id"`
	Slug                string          `json:"slug"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	Collections         []string        `json:"collections"`
	Images              []string        `json:"images"`
	Description         string          `json:"description"`
	BasePurchasePrice   decimal.Decimal `json:"basePurchasePrice"`
	TransportCost       decimal.Decimal `json:"transportCost"`
	OtherCost           decimal.Decimal `json:"otherCost"`
	ProfitMarginPercent decimal.Decimal `json:"profitMarginPercent"`
	DiscountAmount      decimal.Decimal `json:"discountAmount"`
	DiscountReason      string          `json:"discountReason,omitempty"`
	GSTPercent          string          `json:"gstPercent"`
	Pricing             PricingResponse `json:"pricing"`
	Variations          []VariationDTO  `json:"variations"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// ProductSummary tarjeta de producto en listados públicos.
type ProductSummary struct {
	ID            string          `json:"id"`
	Slug          string          `json:"slug"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Image         string          `json:"image,omitempty"`
	Price         decimal.Decimal `json:"price"`
	DisplayPrice  decimal.Decimal `json:"displayPrice"`
	DiscountLabel string          `json:"discountLabel,omitempty"`
	InStock       bool            `json:"inStock"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductSummary `json:"items"`
	Page  PageResponse     `json:"page"`
}

// SizeOptionDTO talla seleccionable.
type SizeOptionDTO struct {
	Size     string `json:"size"`
	Stock    int    `json:"stock"`
	Disabled bool   `json:"disabled"`
}

// SelectionResponse estado de la selección color/talla/cantidad.
type SelectionResponse struct {
	Color            string          `json:"color"`
	Size             string          `json:"size"`
	Stock            int             `json:"stock"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	DisplayUnitPrice decimal.Decimal `json:"displayUnitPrice"`
	SizeOptions      []SizeOptionDTO `json:"sizeOptions"`
	CanAddToCart     bool            `json:"canAddToCart"`
	Message          string          `json:"message,omitempty"`
}

// ProductDetailResponse página de detalle (cualquier colección).
type ProductDetailResponse struct {
	Source          string            `json:"source"`
	ID              string            `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	Category        string            `json:"category"`
	Images          []string          `json:"images"`
	DescriptionHTML string            `json:"descriptionHtml"`
	Pricing         PricingResponse   `json:"pricing"`
	DiscountReason  string            `json:"discountReason,omitempty"`
	Colors          []string          `json:"colors"`
	Selection       SelectionResponse `json:"selection"`
}

// SelectionRequest cambio de color/talla/cantidad en la página de detalle.
type SelectionRequest struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	// PreviousSize talla antes del cambio de color; si Size viene vacío se
	// aplica la regla de cambio de color con esta talla.
	PreviousSize string `json:"previousSize,omitempty"`
}
