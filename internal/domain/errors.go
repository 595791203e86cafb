package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrAlreadyOccupied  = errors.New("la estantería ya está ocupada")
	ErrAlreadyAvailable = errors.New("la estantería ya está disponible")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrCorruptState     = errors.New("estado persistido inconsistente")
)
