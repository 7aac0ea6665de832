package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Motor de inventario: un ajuste con delta cero no aporta información.
	ErrZeroDelta         = errors.New("el ajuste debe tener un delta distinto de cero")
	ErrInvalidChangeType = errors.New("tipo de cambio de inventario inválido")

	// Pedidos.
	ErrEmptyOrder      = errors.New("el pedido no tiene líneas")
	ErrProductInactive = errors.New("producto inactivo")

	// Conflicto de serialización tras agotar los reintentos de la transacción.
	ErrTxConflict = errors.New("conflicto de concurrencia, reintente la operación")
)
