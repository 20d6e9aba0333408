package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Storefront-api/internal/domain"
	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

func TestOrderInsertError(t *testing.T) {
	o := &entity.Order{Number: "ORD-1", GatewayOrderID: "order_1", GatewayPaymentID: "pay_1"}
	unique := func(constraint string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraint})
	}

	err := orderInsertError(unique("orders_gateway_payment_id_key"), o)
	assert.True(t, errors.Is(err, domain.ErrConflict), "pago reutilizado")
	assert.Contains(t, err.Error(), "pay_1")

	err = orderInsertError(unique("orders_gateway_order_id_key"), o)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	err = orderInsertError(unique("orders_number_key"), o)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	err = orderInsertError(errors.New("conexión cerrada"), o)
	assert.False(t, errors.Is(err, domain.ErrConflict))
	assert.False(t, errors.Is(err, domain.ErrDuplicate))
}
