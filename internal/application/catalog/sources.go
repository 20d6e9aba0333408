package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
	"github.com/jhoicas/Storefront-api/internal/domain/repository"
)

// SourceProduct origen genérico: cualquier producto por slug.
const SourceProduct = "product"

const categoryPrefix = "category:"

type collectionSource struct {
	repo       repository.ProductRepository
	collection string
}

func (s collectionSource) Name() string { return s.collection }

func (s collectionSource) Fetch(ctx context.Context, slug string) (*entity.Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil || p == nil {
		return nil, err
	}
	if !p.InCollection(s.collection) {
		return nil, nil
	}
	return p, nil
}

type categorySource struct {
	repo     repository.ProductRepository
	category string
}

func (s categorySource) Name() string { return categoryPrefix + s.category }

func (s categorySource) Fetch(ctx context.Context, slug string) (*entity.Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil || p == nil {
		return nil, err
	}
	if !strings.EqualFold(p.Category, s.category) {
		return nil, nil
	}
	return p, nil
}

type anySource struct {
	repo repository.ProductRepository
}

func (anySource) Name() string { return SourceProduct }

func (s anySource) Fetch(ctx context.Context, slug string) (*entity.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Sources resuelve nombres de origen ("bestseller", "category:lehenga", "product").
type Sources struct {
	repo repository.ProductRepository
}

// NewSources construye el resolvedor de orígenes sobre el repositorio.
func NewSources(repo repository.ProductRepository) *Sources {
	return &Sources{repo: repo}
}

// Lookup devuelve el origen por nombre o domain.ErrNotFound.
func (s *Sources) Lookup(name string) (ProductSource, error) {
	switch name {
	case entity.CollectionBestseller, entity.CollectionNewArrival,
		entity.CollectionTrending, entity.CollectionShopByTheme:
		return collectionSource{repo: s.repo, collection: name}, nil
	case SourceProduct:
		return anySource{repo: s.repo}, nil
	}
	if cat, ok := strings.CutPrefix(name, categoryPrefix); ok && strings.TrimSpace(cat) != "" {
		return categorySource{repo: s.repo, category: strings.TrimSpace(cat)}, nil
	}
	return nil, fmt.Errorf("%w: origen %q", domain.ErrNotFound, name)
}
