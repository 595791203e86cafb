package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed migrations/001_wms.sql
var schemaSQL string

// EnsureSchema crea las tablas del almacén si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
