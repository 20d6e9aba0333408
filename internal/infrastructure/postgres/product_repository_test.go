package postgres

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

func TestDecrement(t *testing.T) {
	vs := []entity.Variation{
		{Color: "Red", Size: "M", Stock: 2},
		{Color: "Red", Size: "M", Stock: 9}, // repetida: gana la primera
		{Color: "Blue", Size: "L", Stock: 1},
	}

	require.NoError(t, decrement(vs, "Red", "M", 2))
	assert.Equal(t, 0, vs[0].Stock)
	assert.Equal(t, 9, vs[1].Stock)

	err := decrement(vs, "Red", "M", 1)
	assert.True(t, errors.Is(err, domain.ErrOutOfStock))

	err = decrement(vs, "Green", "S", 1)
	assert.True(t, errors.Is(err, domain.ErrOutOfStock))
}

func TestRedactDSN(t *testing.T) {
	assert.Equal(t, "postgres://shop:xxxxx@db:5432/storefront", RedactDSN("postgres://shop:secret@db:5432/storefront"))
	assert.Equal(t, "not a url", RedactDSN("not a url"))
}
