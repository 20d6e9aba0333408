package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrOutOfStock          = errors.New("producto agotado")
	ErrEmptyCart           = errors.New("el carrito está vacío")
	ErrCouponInvalid       = errors.New("cupón inválido")
	ErrPaymentVerification = errors.New("verificación de pago fallida")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
)
