package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/wms-estanterias/internal/domain"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
	"github.com/jhoicas/wms-estanterias/internal/domain/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo implementación del puerto StateRepository sobre PostgreSQL.
type StateRepo struct {
	db Querier
	tx *TxRunner
}

// NewStateRepository construye el adaptador de persistencia del almacén.
func NewStateRepository(pool *pgxpool.Pool) *StateRepo {
	return &StateRepo{db: pool, tx: NewTxRunner(pool)}
}

// Load lee el estado completo. Devuelve nil, nil si el almacén nunca fue inicializado.
func (r *StateRepo) Load(ctx context.Context) (*entity.WarehouseState, error) {
	var initializedAt time.Time
	err := r.db.QueryRow(ctx, `SELECT initialized_at FROM wms_meta`).Scan(&initializedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer wms_meta: %w", err)
	}

	state := &entity.WarehouseState{}
	if state.Aisles, err = r.loadAisles(ctx); err != nil {
		return nil, err
	}
	if state.Shelves, err = r.loadShelves(ctx); err != nil {
		return nil, err
	}
	if state.Products, err = r.loadProducts(ctx); err != nil {
		return nil, err
	}
	if state.Transactions, err = r.loadTransactions(ctx); err != nil {
		return nil, err
	}
	return state, nil
}

func (r *StateRepo) loadAisles(ctx context.Context) ([]entity.Aisle, error) {
	rows, err := r.db.Query(ctx, `SELECT name, gondola_count FROM wms_aisles ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("listar calles: %w", err)
	}
	defer rows.Close()
	var list []entity.Aisle
	for rows.Next() {
		var a entity.Aisle
		if err := rows.Scan(&a.Name, &a.GondolaCount); err != nil {
			return nil, fmt.Errorf("scan calle: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *StateRepo) loadShelves(ctx context.Context) ([]entity.Shelf, error) {
	rows, err := r.db.Query(ctx, `
		SELECT position, aisle, gondola, level, status, product_id, last_updated
		FROM wms_shelves`)
	if err != nil {
		return nil, fmt.Errorf("listar estanterías: %w", err)
	}
	defer rows.Close()
	var list []entity.Shelf
	for rows.Next() {
		var (
			s         entity.Shelf
			status    string
			productID *string
		)
		if err := rows.Scan(&s.Position, &s.Aisle, &s.Gondola, &s.Level, &status, &productID, &s.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan estantería: %w", err)
		}
		s.Status = entity.ShelfStatus(status)
		if productID != nil {
			s.ProductID = *productID
		}
		s.LastUpdated = s.LastUpdated.UTC()
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *StateRepo) loadProducts(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, sku, quantity, unit, category, description, position, created_at, updated_at
		FROM wms_products`)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()
	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Quantity, &p.Unit, &p.Category,
			&p.Description, &p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		if p.UpdatedAt != nil {
			u := p.UpdatedAt.UTC()
			p.UpdatedAt = &u
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *StateRepo) loadTransactions(ctx context.Context) ([]entity.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, seq, type, position, product_id, ts, details
		FROM wms_transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listar transacciones: %w", err)
	}
	defer rows.Close()
	var list []entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Sequence, &t.Type, &t.Position, &t.ProductID, &t.Timestamp, &t.Details); err != nil {
			return nil, fmt.Errorf("scan transacción: %w", err)
		}
		t.Timestamp = t.Timestamp.UTC()
		list = append(list, t)
	}
	return list, rows.Err()
}

// Save reemplaza todo el estado en una sola transacción usando COPY para la carga masiva.
func (r *StateRepo) Save(ctx context.Context, state *entity.WarehouseState) error {
	return r.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, `TRUNCATE wms_transactions, wms_products, wms_shelves, wms_aisles, wms_meta`); err != nil {
			return fmt.Errorf("vaciar tablas: %w", err)
		}
		if _, err := q.Exec(ctx, `INSERT INTO wms_meta (initialized_at) VALUES ($1)`, time.Now().UTC()); err != nil {
			return wrapWrite("insert wms_meta", err)
		}

		aisles := make([][]any, 0, len(state.Aisles))
		for i, a := range state.Aisles {
			aisles = append(aisles, []any{i, a.Name, a.GondolaCount})
		}
		if _, err := q.CopyFrom(ctx, pgx.Identifier{"wms_aisles"},
			[]string{"ordinal", "name", "gondola_count"}, pgx.CopyFromRows(aisles)); err != nil {
			return wrapWrite("copy calles", err)
		}

		if _, err := q.CopyFrom(ctx, pgx.Identifier{"wms_shelves"},
			[]string{"position", "aisle", "gondola", "level", "status", "product_id", "last_updated"},
			pgx.CopyFromSlice(len(state.Shelves), func(i int) ([]any, error) {
				s := state.Shelves[i]
				return []any{s.Position, s.Aisle, s.Gondola, s.Level, string(s.Status), nullable(s.ProductID), s.LastUpdated}, nil
			})); err != nil {
			return wrapWrite("copy estanterías", err)
		}

		if _, err := q.CopyFrom(ctx, pgx.Identifier{"wms_products"},
			[]string{"id", "name", "sku", "quantity", "unit", "category", "description", "position", "created_at", "updated_at"},
			pgx.CopyFromSlice(len(state.Products), func(i int) ([]any, error) {
				p := state.Products[i]
				return []any{p.ID, p.Name, p.SKU, p.Quantity, p.Unit, p.Category, p.Description, p.Position, p.CreatedAt, p.UpdatedAt}, nil
			})); err != nil {
			return wrapWrite("copy productos", err)
		}

		if _, err := q.CopyFrom(ctx, pgx.Identifier{"wms_transactions"},
			[]string{"id", "seq", "type", "position", "product_id", "ts", "details"},
			pgx.CopyFromSlice(len(state.Transactions), func(i int) ([]any, error) {
				t := state.Transactions[i]
				return []any{t.ID, t.Sequence, t.Type, t.Position, t.ProductID, t.Timestamp, t.Details}, nil
			})); err != nil {
			return wrapWrite("copy transacciones", err)
		}
		return nil
	})
}

// Apply persiste una mutación: estantería, alta/edición o baja de producto y la transacción del registro.
func (r *StateRepo) Apply(ctx context.Context, change repository.StateChange) error {
	return r.tx.Run(ctx, func(q Querier) error {
		s := change.Shelf
		cmd, err := q.Exec(ctx, `
			UPDATE wms_shelves SET status = $2, product_id = $3, last_updated = $4
			WHERE position = $1`,
			s.Position, string(s.Status), nullable(s.ProductID), s.LastUpdated)
		if err != nil {
			return wrapWrite("update estantería", err)
		}
		if cmd.RowsAffected() == 0 {
			return fmt.Errorf("estantería %s: %w", s.Position, domain.ErrNotFound)
		}

		if change.DeleteProductID != "" {
			if _, err := q.Exec(ctx, `DELETE FROM wms_products WHERE id = $1`, change.DeleteProductID); err != nil {
				return fmt.Errorf("delete producto: %w", err)
			}
		}
		if p := change.UpsertProduct; p != nil {
			_, err := q.Exec(ctx, `
				INSERT INTO wms_products (id, name, sku, quantity, unit, category, description, position, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (id) DO UPDATE SET
					name = EXCLUDED.name, sku = EXCLUDED.sku, quantity = EXCLUDED.quantity,
					unit = EXCLUDED.unit, category = EXCLUDED.category, description = EXCLUDED.description,
					updated_at = EXCLUDED.updated_at`,
				p.ID, p.Name, p.SKU, p.Quantity, p.Unit, p.Category, p.Description, p.Position, p.CreatedAt, p.UpdatedAt)
			if err != nil {
				return wrapWrite("upsert producto", err)
			}
		}

		t := change.Transaction
		if _, err := q.Exec(ctx, `
			INSERT INTO wms_transactions (id, seq, type, position, product_id, ts, details)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			t.ID, t.Sequence, t.Type, t.Position, t.ProductID, t.Timestamp, t.Details); err != nil {
			return wrapWrite("insert transacción", err)
		}
		return nil
	})
}
