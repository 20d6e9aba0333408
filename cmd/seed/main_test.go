package main

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

type memUsers struct {
	byEmail map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

func TestLoad_CatalogoDeEjemplo(t *testing.T) {
	f, err := os.Open("catalog.yaml")
	require.NoError(t, err)
	defer f.Close()

	seed, err := load(f)
	require.NoError(t, err)
	require.Len(t, seed.Products, 3)
	assert.Equal(t, "admin@storefront.local", seed.Admin.Email)

	req, err := seed.Products[0].request()
	require.NoError(t, err)
	assert.Equal(t, "banarasi-silk-lehenga", req.Slug)
	assert.True(t, req.BasePurchasePrice.Equal(decimal.NewFromInt(4200)))
	assert.True(t, req.DiscountAmount.Equal(decimal.NewFromInt(300)))
	require.Len(t, req.Variations, 3)
	assert.True(t, req.Variations[2].PriceModifier.Equal(decimal.NewFromInt(250)))
	assert.True(t, req.Variations[0].PriceModifier.IsZero(), "modificador vacío = 0")

	cr, err := seed.Coupons[0].request()
	require.NoError(t, err)
	assert.Equal(t, entity.CouponPercent, cr.Type)
	assert.True(t, cr.MaxDiscount.Equal(decimal.NewFromInt(500)))
}

func TestRequest_ImporteInvalido(t *testing.T) {
	_, err := seedProduct{Slug: "x", Purchase: "mil"}.request()
	assert.Error(t, err)
}

func TestSeedAdmin(t *testing.T) {
	users := &memUsers{byEmail: map[string]*entity.User{}}
	seed := &seedFile{}
	seed.Admin.Email = " Admin@Shop.IN "
	seed.Admin.Name = "Admin"

	require.NoError(t, seedAdmin(context.Background(), users, seed, ""))
	assert.Empty(t, users.byEmail, "sin contraseña no se crea")

	require.NoError(t, seedAdmin(context.Background(), users, seed, "secreto123"))
	u := users.byEmail["admin@shop.in"]
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreto123")))

	hash := u.PasswordHash
	require.NoError(t, seedAdmin(context.Background(), users, seed, "otra-clave"))
	assert.Equal(t, hash, users.byEmail["admin@shop.in"].PasswordHash, "no se sobrescribe")
}
