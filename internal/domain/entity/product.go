package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Colecciones de producto (antes cada una tenía su propia página de detalle).
const (
	CollectionBestseller  = "bestseller"
	CollectionNewArrival  = "new-arrival"
	CollectionTrending    = "trending"
	CollectionShopByTheme = "shop-by-category"
)

// Product representa una prenda del catálogo (lehenga, kurti, blusa...).
// Los campos de costo son la entrada del motor de precios; Pricing es la
// derivación guardada y se recalcula en cada escritura.
type Product struct {
	ID                  string
	Slug                string
	Name                string
	Category            string
	Collections         []string
	Images              []string
	Description         string // markdown
	BasePurchasePrice   decimal.Decimal
	TransportCost       decimal.Decimal
	OtherCost           decimal.Decimal
	ProfitMarginPercent decimal.Decimal
	DiscountAmount      decimal.Decimal
	DiscountReason      string
	GSTPercent          string // tal como lo ingresa el admin, ej. "5%"
	Pricing             PricingSnapshot
	Variations          []Variation
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PricingSnapshot valores derivados del motor de precios (sin redondear).
type PricingSnapshot struct {
	LandedCost            decimal.Decimal `json:"landed_cost"`
	SellingPriceBeforeGST decimal.Decimal `json:"selling_price_before_gst"`
	TaxableValue          decimal.Decimal `json:"taxable_value"`
	GSTRate               decimal.Decimal `json:"gst_rate"`
	FinalInvoiceValue     decimal.Decimal `json:"final_invoice_value"`
	DiscountLabel         string          `json:"discount_label"`
}

// Variation combinación color/talla con stock propio y ajuste de precio.
type Variation struct {
	Color         string          `json:"color"`
	Size          string          `json:"size"`
	Stock         int             `json:"stock"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	SKU           string          `json:"sku,omitempty"`
}

// InCollection indica si el producto pertenece a la colección.
func (p *Product) InCollection(name string) bool {
	for _, c := range p.Collections {
		if c == name {
			return true
		}
	}
	return false
}
