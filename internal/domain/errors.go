package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInvalidAmount      = errors.New("monto inválido")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCajaAbierta        = errors.New("ya existe una caja abierta")
	ErrCajaCerrada        = errors.New("la caja no está abierta")
	ErrCajaYaCerrada      = errors.New("la caja ya está cerrada")
	ErrCajaDuplicada      = errors.New("ya existe una caja para la fecha")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
