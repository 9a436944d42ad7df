package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrGroupWarehouse   = errors.New("no se permiten transacciones contra una bodega grupo")
	ErrNegativeStock    = errors.New("stock negativo no permitido")
	ErrInvalidDocStatus = errors.New("estado documental inválido para la operación")
)
