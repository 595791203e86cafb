package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/wms-estanterias/internal/domain"
)

const (
	// LevelsPerGondola niveles fijos de cada góndola.
	LevelsPerGondola = 6
	// MaxGondolas límite impuesto por el formato de dos dígitos de la clave.
	MaxGondolas = 99
	// PositionSeparator separa calle, góndola y nivel en la clave canónica.
	PositionSeparator = "-"
)

// PositionKey devuelve la clave canónica "<calle>-<góndola:2>-<nivel:2>", ej. "Rua A-03-05".
func PositionKey(aisle string, gondola, level int) string {
	return fmt.Sprintf("%s%s%02d%s%02d", aisle, PositionSeparator, gondola, PositionSeparator, level)
}

// ParsePosition decodifica una clave canónica en (calle, góndola, nivel).
// La calle es todo lo que precede a los dos últimos separadores.
func ParsePosition(key string) (aisle string, gondola, level int, err error) {
	parts := strings.Split(key, PositionSeparator)
	if len(parts) < 3 {
		return "", 0, 0, fmt.Errorf("posición %q: %w", key, domain.ErrInvalidInput)
	}
	n := len(parts)
	aisle = strings.Join(parts[:n-2], PositionSeparator)
	gondolaPart, levelPart := parts[n-2], parts[n-1]
	if aisle == "" || len(gondolaPart) != 2 || len(levelPart) != 2 {
		return "", 0, 0, fmt.Errorf("posición %q: %w", key, domain.ErrInvalidInput)
	}
	gondola, err = strconv.Atoi(gondolaPart)
	if err != nil || gondola < 1 {
		return "", 0, 0, fmt.Errorf("posición %q: góndola inválida: %w", key, domain.ErrInvalidInput)
	}
	level, err = strconv.Atoi(levelPart)
	if err != nil || level < 1 || level > LevelsPerGondola {
		return "", 0, 0, fmt.Errorf("posición %q: nivel inválido: %w", key, domain.ErrInvalidInput)
	}
	return aisle, gondola, level, nil
}
