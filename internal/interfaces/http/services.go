package http

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
)

// Contratos mínimos que consumen los handlers. Los implementan los casos de
// uso de internal/application; las interfaces permiten probar los handlers
// con dobles sin base de datos.

type authService interface {
	RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

type catalogService interface {
	List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error)
	Detail(ctx context.Context, sourceName, slug string) (*dto.ProductDetailResponse, error)
	ResolveSelection(ctx context.Context, productID string, in dto.SelectionRequest) (*dto.SelectionResponse, error)
	PreviewPricing(in dto.PricingPreviewRequest) dto.PricingResponse
	Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id string) error
	ListAdmin(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductResponse, error)
}

type cartService interface {
	Get(ctx context.Context, userID string) (*dto.CartResponse, error)
	Add(ctx context.Context, userID string, in dto.AddToCartRequest) (*dto.CartResponse, error)
	UpdateQuantity(ctx context.Context, userID string, in dto.UpdateCartRequest) (*dto.CartResponse, error)
	Remove(ctx context.Context, userID, lineID string) (*dto.CartResponse, error)
	Totals(ctx context.Context, userID, buyerState string, discount decimal.Decimal) (*dto.CartTotalsResponse, error)
}

type couponService interface {
	Validate(ctx context.Context, in dto.ValidateCouponRequest) (*dto.CouponDTO, error)
	Create(ctx context.Context, in dto.CreateCouponRequest) (*dto.CouponResponse, error)
	List(ctx context.Context, limit, offset int) ([]dto.CouponResponse, error)
}

type orderService interface {
	Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Quote(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.CheckoutQuoteResponse, error)
	Get(ctx context.Context, userID, role, id string) (*dto.OrderResponse, error)
	ListMine(ctx context.Context, userID string, page dto.PageRequest) (*dto.OrderListResponse, error)
	List(ctx context.Context, filter repository.OrderFilter) (*dto.OrderListResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error)
	InvoicePDF(ctx context.Context, id string) ([]byte, string, error)
}

type paymentService interface {
	CreateGatewayOrder(ctx context.Context, in dto.CreatePaymentOrderRequest) (*dto.CreatePaymentOrderResponse, error)
	Verify(ctx context.Context, in dto.VerifyPaymentRequest) error
}

type locationCatalog interface {
	Countries() []entity.Country
	States(countryCode string) []entity.State
}

type dashboardService interface {
	GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}
