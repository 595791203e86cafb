package repository

import (
	"context"

	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

// StateChange describe una mutación atómica del almacén: la estantería resultante,
// el producto a insertar/actualizar o el ID a eliminar, y la transacción registrada.
type StateChange struct {
	Shelf           entity.Shelf
	UpsertProduct   *entity.Product
	DeleteProductID string
	Transaction     entity.Transaction
}

// StateRepository define el puerto de persistencia del almacén (DIP).
// Load devuelve (nil, nil) cuando el backend no tiene estado guardado.
type StateRepository interface {
	Load(ctx context.Context) (*entity.WarehouseState, error)
	Save(ctx context.Context, state *entity.WarehouseState) error
	Apply(ctx context.Context, change StateChange) error
}
