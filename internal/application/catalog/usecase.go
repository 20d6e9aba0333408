package catalog

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/pricing"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
	"github.com/jhoicas/Storefront-api/internal/domain/variation"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// CatalogUseCase administra productos y arma la página de detalle.
type CatalogUseCase struct {
	repo     repository.ProductRepository
	sources  *Sources
	renderer DescriptionRenderer
	policy   variation.QuantityPolicy
	log      zerolog.Logger
}

// NewCatalogUseCase construye el caso de uso. La política de cantidad por
// defecto es variation.ResetToOne.
func NewCatalogUseCase(repo repository.ProductRepository, renderer DescriptionRenderer, log zerolog.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		repo:     repo,
		sources:  NewSources(repo),
		renderer: renderer,
		policy:   variation.ResetToOne,
		log:      log,
	}
}

// WithQuantityPolicy cambia la política aplicada en ResolveSelection.
func (uc *CatalogUseCase) WithQuantityPolicy(p variation.QuantityPolicy) *CatalogUseCase {
	uc.policy = p
	return uc
}

// PreviewPricing recalcula los precios del formulario sin persistir.
func (uc *CatalogUseCase) PreviewPricing(in dto.PricingPreviewRequest) dto.PricingResponse {
	rate, ok := pricing.ParseGSTPercent(in.GSTPercent)
	res := pricing.Recalc(pricing.Costs{
		PurchasePrice: in.BasePurchasePrice,
		TransportCost: in.TransportCost,
		OtherCost:     in.OtherCost,
	}, in.ProfitMarginPercent, in.DiscountAmount, rate)
	out := pricingResponse(snapshotOf(res))
	if !ok {
		uc.log.Warn().Str("gst", in.GSTPercent).Msg("GST con formato inválido, se usa 0%")
		out.GSTWarning = fmt.Sprintf("GST %q no es un porcentaje válido; se usó 0%%", in.GSTPercent)
	}
	return out
}

// Create crea un producto con su derivación de precios.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	p := &entity.Product{ID: uuid.New().String(), CreatedAt: now}
	if err := uc.apply(p, in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySlug(ctx, p.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: slug %q", domain.ErrDuplicate, p.Slug)
	}
	p.UpdatedAt = now
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update reemplaza los datos editables y vuelve a derivar los precios.
func (uc *CatalogUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	oldSlug := p.Slug
	if err := uc.apply(p, in); err != nil {
		return nil, err
	}
	if p.Slug != oldSlug {
		other, err := uc.repo.GetBySlug(ctx, p.Slug)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != p.ID {
			return nil, fmt.Errorf("%w: slug %q", domain.ErrDuplicate, p.Slug)
		}
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto (vista admin).
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// Delete elimina un producto.
func (uc *CatalogUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ListAdmin lista productos completos con costos.
func (uc *CatalogUseCase) ListAdmin(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// List listado público (tarjetas) filtrado por colección o categoría.
func (uc *CatalogUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductSummary, 0, len(list))
	for _, p := range list {
		items = append(items, toSummary(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Detail arma la página de detalle de un producto desde cualquier origen.
func (uc *CatalogUseCase) Detail(ctx context.Context, sourceName, slug string) (*dto.ProductDetailResponse, error) {
	src, err := uc.sources.Lookup(sourceName)
	if err != nil {
		return nil, err
	}
	p, err := src.Fetch(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	sel, _ := variation.DefaultSelection(p.Variations)
	return &dto.ProductDetailResponse{
		Source:          src.Name(),
		ID:              p.ID,
		Slug:            p.Slug,
		Name:            p.Name,
		Category:        p.Category,
		Images:          nonNil(p.Images),
		DescriptionHTML: uc.renderDescription(p),
		Pricing:         pricingResponse(p.Pricing),
		DiscountReason:  p.DiscountReason,
		Colors:          variation.Colors(p.Variations),
		Selection:       uc.selection(p, sel, 1),
	}, nil
}

// ResolveSelection aplica un cambio de color, talla o cantidad y devuelve
// stock, precio unitario y la cantidad ajustada.
func (uc *CatalogUseCase) ResolveSelection(ctx context.Context, productID string, in dto.SelectionRequest) (*dto.SelectionResponse, error) {
	p, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	var sel variation.Selection
	switch {
	case in.Color != "" && in.Size != "":
		sel = variation.Selection{Color: in.Color, Size: in.Size}
	case in.Color != "":
		sel = variation.SelectColor(p.Variations, in.PreviousSize, in.Color)
	default:
		sel, _ = variation.DefaultSelection(p.Variations)
	}
	out := uc.selection(p, sel, in.Quantity)
	return &out, nil
}

func (uc *CatalogUseCase) selection(p *entity.Product, sel variation.Selection, qty int) dto.SelectionResponse {
	r := variation.Resolve(p.Pricing.FinalInvoiceValue, p.Variations, sel.Color, sel.Size)
	qty = uc.policy.Adjust(qty, r.Stock)

	opts := variation.SizeOptions(p.Variations, sel.Color)
	sizes := make([]dto.SizeOptionDTO, 0, len(opts))
	for _, o := range opts {
		sizes = append(sizes, dto.SizeOptionDTO{Size: o.Size, Stock: o.Stock, Disabled: o.Disabled})
	}

	out := dto.SelectionResponse{
		Color:            sel.Color,
		Size:             sel.Size,
		Stock:            r.Stock,
		Quantity:         qty,
		UnitPrice:        r.UnitPrice,
		DisplayUnitPrice: pricing.RoundTotalPrice(r.UnitPrice),
		SizeOptions:      sizes,
		CanAddToCart:     true,
	}
	if err := variation.CheckAddToCart(r, qty); err != nil {
		out.CanAddToCart = false
		out.Message = err.Error()
	}
	return out
}

func (uc *CatalogUseCase) renderDescription(p *entity.Product) string {
	if p.Description == "" {
		return ""
	}
	if uc.renderer == nil {
		return "<p>" + html.EscapeString(p.Description) + "</p>"
	}
	out, err := uc.renderer.Render(p.Description)
	if err != nil {
		uc.log.Warn().Err(err).Str("product", p.ID).Msg("no se pudo renderizar la descripción")
		return "<p>" + html.EscapeString(p.Description) + "</p>"
	}
	return out
}

// apply valida la entrada, la copia al producto y recalcula la derivación.
func (uc *CatalogUseCase) apply(p *entity.Product, in dto.ProductRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	for _, f := range []struct {
		label string
		v     decimal.Decimal
	}{
		{"precio de compra", in.BasePurchasePrice},
		{"transporte", in.TransportCost},
		{"otros costos", in.OtherCost},
		{"utilidad", in.ProfitMarginPercent},
		{"descuento", in.DiscountAmount},
	} {
		if f.v.IsNegative() {
			return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, f.label)
		}
	}

	vs := make([]entity.Variation, 0, len(in.Variations))
	for _, v := range in.Variations {
		vs = append(vs, entity.Variation{
			Color:         strings.TrimSpace(v.Color),
			Size:          strings.TrimSpace(v.Size),
			Stock:         v.Stock,
			PriceModifier: v.PriceModifier,
			SKU:           strings.TrimSpace(v.SKU),
		})
	}
	if err := variation.ValidateUnique(vs); err != nil {
		uc.log.Warn().Err(err).Str("product", name).Msg("variaciones rechazadas")
		return err
	}

	rate, ok := pricing.ParseGSTPercent(in.GSTPercent)
	if !ok {
		uc.log.Warn().Str("gst", in.GSTPercent).Str("product", name).Msg("GST con formato inválido, se usa 0%")
	}
	res := pricing.Recalc(pricing.Costs{
		PurchasePrice: in.BasePurchasePrice,
		TransportCost: in.TransportCost,
		OtherCost:     in.OtherCost,
	}, in.ProfitMarginPercent, in.DiscountAmount, rate)
	if res.TaxableValue.IsNegative() {
		return fmt.Errorf("%w: el descuento supera el precio de venta", domain.ErrInvalidInput)
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	p.Name = name
	p.Slug = slug
	p.Category = strings.TrimSpace(in.Category)
	p.Collections = nonNil(in.Collections)
	p.Images = nonNil(in.Images)
	p.Description = in.Description
	p.BasePurchasePrice = in.BasePurchasePrice
	p.TransportCost = in.TransportCost
	p.OtherCost = in.OtherCost
	p.ProfitMarginPercent = in.ProfitMarginPercent
	p.DiscountAmount = in.DiscountAmount
	p.DiscountReason = strings.TrimSpace(in.DiscountReason)
	p.GSTPercent = pricing.FormatGSTPercent(rate)
	p.Pricing = snapshotOf(res)
	p.Variations = vs
	return nil
}

// Slugify "Red Bridal Lehenga" -> "red-bridal-lehenga".
func Slugify(s string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func snapshotOf(r pricing.Result) entity.PricingSnapshot {
	return entity.PricingSnapshot{
		LandedCost:            r.LandedCost,
		SellingPriceBeforeGST: r.SellingPriceBeforeGST,
		TaxableValue:          r.TaxableValue,
		GSTRate:               r.GSTRate,
		FinalInvoiceValue:     r.FinalInvoiceValue,
		DiscountLabel:         r.DiscountLabel,
	}
}

func pricingResponse(s entity.PricingSnapshot) dto.PricingResponse {
	return dto.PricingResponse{
		LandedCost:            s.LandedCost,
		SellingPriceBeforeGST: s.SellingPriceBeforeGST,
		TaxableValue:          s.TaxableValue,
		GSTRate:               s.GSTRate,
		FinalInvoiceValue:     s.FinalInvoiceValue,
		DisplayPrice:          pricing.RoundTotalPrice(s.FinalInvoiceValue),
		DiscountLabel:         s.DiscountLabel,
	}
}

func toSummary(p *entity.Product) dto.ProductSummary {
	s := dto.ProductSummary{
		ID:            p.ID,
		Slug:          p.Slug,
		Name:          p.Name,
		Category:      p.Category,
		Price:         p.Pricing.FinalInvoiceValue,
		DisplayPrice:  pricing.RoundTotalPrice(p.Pricing.FinalInvoiceValue),
		DiscountLabel: p.Pricing.DiscountLabel,
	}
	if len(p.Images) > 0 {
		s.Image = p.Images[0]
	}
	for _, v := range p.Variations {
		if v.Stock > 0 {
			s.InStock = true
			break
		}
	}
	return s
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	vs := make([]dto.VariationDTO, 0, len(p.Variations))
	for _, v := range p.Variations {
		vs = append(vs, dto.VariationDTO{
			Color:         v.Color,
			Size:          v.Size,
			Stock:         v.Stock,
			PriceModifier: v.PriceModifier,
			SKU:           v.SKU,
		})
	}
	return &dto.ProductResponse{
		ID:                  p.ID,
		Slug:                p.Slug,
		Name:                p.Name,
		Category:            p.Category,
		Collections:         nonNil(p.Collections),
		Images:              nonNil(p.Images),
		Description:         p.Description,
		BasePurchasePrice:   p.BasePurchasePrice,
		TransportCost:       p.TransportCost,
		OtherCost:           p.OtherCost,
		ProfitMarginPercent: p.ProfitMarginPercent,
		DiscountAmount:      p.DiscountAmount,
		DiscountReason:      p.DiscountReason,
		GSTPercent:          p.GSTPercent,
		Pricing:             pricingResponse(p.Pricing),
		Variations:          vs,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
