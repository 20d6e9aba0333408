// seed carga un administrador, productos y cupones de ejemplo a partir de un YAML.
//
// Uso: go run ./cmd/seed [ruta/catalog.yaml]
// Por defecto usa cmd/seed/catalog.yaml. Los productos con slug existente se omiten.
// La contraseña del administrador se toma de SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Storefront-api/internal/application/catalog"
	"github.com/jhoicas/Storefront-api/internal/application/coupon"
	"github.com/jhoicas/Storefront-api/internal/application/dto"
	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/infrastructure/markup"
	"github.com/jhoicas/Storefront-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Storefront-api/pkg/config"
	"github.com/jhoicas/Storefront-api/pkg/logger"
)

type seedFile struct {
	Admin struct {
		Email string `yaml:"email"`
		Name  string `yaml:"name"`
	} `yaml:"admin"`
	Products []seedProduct `yaml:"products"`
	Coupons  []seedCoupon  `yaml:"coupons"`
}

type seedProduct struct {
	Name        string          `yaml:"name"`
	Slug        string          `yaml:"slug"`
	Category    string          `yaml:"category"`
	Collections []string        `yaml:"collections"`
	Images      []string        `yaml:"images"`
	Description string          `yaml:"description"`
	Purchase    string          `yaml:"purchase"`
	Transport   string          `yaml:"transport"`
	Other       string          `yaml:"other"`
	Margin      string          `yaml:"margin"`
	Discount    string          `yaml:"discount"`
	Reason      string          `yaml:"reason"`
	GST         string          `yaml:"gst"`
	Variations  []seedVariation `yaml:"variations"`
}

type seedVariation struct {
	Color    string `yaml:"color"`
	Size     string `yaml:"size"`
	Stock    int    `yaml:"stock"`
	Modifier string `yaml:"modifier"`
	SKU      string `yaml:"sku"`
}

type seedCoupon struct {
	Code     string `yaml:"code"`
	Type     string `yaml:"type"`
	Value    string `yaml:"value"`
	MinOrder string `yaml:"min_order"`
	Max      string `yaml:"max_discount"`
	Limit    int    `yaml:"usage_limit"`
}

func main() {
	path := "cmd/seed/catalog.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir YAML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	seed, err := load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar YAML: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	users := postgres.NewUserRepository(pool)
	if err := seedAdmin(ctx, users, seed, os.Getenv("SEED_ADMIN_PASSWORD")); err != nil {
		log.Fatal().Err(err).Msg("administrador")
	}

	catalogUC := catalog.NewCatalogUseCase(postgres.NewProductRepository(pool), markup.NewRenderer(), log.Component("seed"))
	created := 0
	for _, sp := range seed.Products {
		req, err := sp.request()
		if err != nil {
			log.Fatal().Err(err).Str("slug", sp.Slug).Msg("producto inválido")
		}
		if _, err := catalogUC.Create(ctx, req); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				log.Info().Str("slug", sp.Slug).Msg("producto ya existe, se omite")
				continue
			}
			log.Fatal().Err(err).Str("slug", sp.Slug).Msg("crear producto")
		}
		created++
	}

	couponUC := coupon.NewCouponUseCase(postgres.NewCouponRepository(pool), log.Component("seed"))
	for _, sc := range seed.Coupons {
		req, err := sc.request()
		if err != nil {
			log.Fatal().Err(err).Str("code", sc.Code).Msg("cupón inválido")
		}
		if _, err := couponUC.Create(ctx, req); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			log.Fatal().Err(err).Str("code", sc.Code).Msg("crear cupón")
		}
	}

	log.Info().Int("productos", created).Int("cupones", len(seed.Coupons)).Msg("seed completado")
}

func load(r io.Reader) (*seedFile, error) {
	var s seedFile
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

type userStore interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// seedAdmin crea el administrador si aún no existe. Sin contraseña no hace nada.
func seedAdmin(ctx context.Context, users userStore, seed *seedFile, password string) error {
	email := strings.ToLower(strings.TrimSpace(seed.Admin.Email))
	if email == "" || password == "" {
		return nil
	}
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	return users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         seed.Admin.Name,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (sp seedProduct) request() (dto.ProductRequest, error) {
	req := dto.ProductRequest{
		Name:           sp.Name,
		Slug:           sp.Slug,
		Category:       sp.Category,
		Collections:    sp.Collections,
		Images:         sp.Images,
		Description:    sp.Description,
		DiscountReason: sp.Reason,
		GSTPercent:     sp.GST,
	}
	var err error
	fields := []struct {
		raw string
		dst *decimal.Decimal
	}{
		{sp.Purchase, &req.BasePurchasePrice},
		{sp.Transport, &req.TransportCost},
		{sp.Other, &req.OtherCost},
		{sp.Margin, &req.ProfitMarginPercent},
		{sp.Discount, &req.DiscountAmount},
	}
	for _, fd := range fields {
		if *fd.dst, err = amount(fd.raw); err != nil {
			return req, err
		}
	}
	for _, v := range sp.Variations {
		mod, err := amount(v.Modifier)
		if err != nil {
			return req, err
		}
		req.Variations = append(req.Variations, dto.VariationDTO{
			Color:         v.Color,
			Size:          v.Size,
			Stock:         v.Stock,
			PriceModifier: mod,
			SKU:           v.SKU,
		})
	}
	return req, nil
}

func (sc seedCoupon) request() (dto.CreateCouponRequest, error) {
	req := dto.CreateCouponRequest{Code: sc.Code, Type: sc.Type, UsageLimit: sc.Limit}
	var err error
	if req.Value, err = amount(sc.Value); err != nil {
		return req, err
	}
	if req.MinOrderTotal, err = amount(sc.MinOrder); err != nil {
		return req, err
	}
	if req.MaxDiscount, err = amount(sc.Max); err != nil {
		return req, err
	}
	return req, nil
}

// amount vacío = 0.
func amount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("importe %q: %w", raw, err)
	}
	return d, nil
}
