package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/wms-estanterias/internal/domain"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
	"github.com/jhoicas/wms-estanterias/internal/domain/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo guarda el almacén en cuatro claves: calles (JSON), estanterías y productos (hashes)
// y el registro de transacciones (lista en orden de creación).
type StateRepo struct {
	client      redis.UniversalClient
	aislesKey   string
	shelvesKey  string
	productsKey string
	txnsKey     string
}

// NewStateRepository construye el adaptador; prefix se antepone a todas las claves (ej. "wms:").
func NewStateRepository(client redis.UniversalClient, prefix string) *StateRepo {
	return &StateRepo{
		client:      client,
		aislesKey:   prefix + "aisles",
		shelvesKey:  prefix + "shelves",
		productsKey: prefix + "products",
		txnsKey:     prefix + "transactions",
	}
}

// Load lee el estado completo. Devuelve nil, nil si la clave de calles no existe.
func (r *StateRepo) Load(ctx context.Context) (*entity.WarehouseState, error) {
	raw, err := r.client.Get(ctx, r.aislesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get calles: %w", err)
	}
	var aisles []aisleRecord
	if err := json.Unmarshal(raw, &aisles); err != nil {
		return nil, fmt.Errorf("redis: decodificar calles: %w: %v", domain.ErrCorruptState, err)
	}

	state := &entity.WarehouseState{Aisles: make([]entity.Aisle, 0, len(aisles))}
	for _, a := range aisles {
		state.Aisles = append(state.Aisles, entity.Aisle{Name: a.Name, GondolaCount: a.Gondolas})
	}

	shelves, err := r.client.HGetAll(ctx, r.shelvesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: hgetall estanterías: %w", err)
	}
	for field, v := range shelves {
		var rec shelfRecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("redis: estantería %s: %w: %v", field, domain.ErrCorruptState, err)
		}
		state.Shelves = append(state.Shelves, rec.toEntity())
	}

	products, err := r.client.HGetAll(ctx, r.productsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: hgetall productos: %w", err)
	}
	for field, v := range products {
		var rec productRecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("redis: producto %s: %w: %v", field, domain.ErrCorruptState, err)
		}
		state.Products = append(state.Products, rec.toEntity())
	}

	txns, err := r.client.LRange(ctx, r.txnsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: lrange transacciones: %w", err)
	}
	for i, v := range txns {
		var rec transactionRecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("redis: transacción #%d: %w: %v", i, domain.ErrCorruptState, err)
		}
		state.Transactions = append(state.Transactions, rec.toEntity())
	}
	return state, nil
}

// Save reemplaza todas las claves dentro de un MULTI/EXEC.
func (r *StateRepo) Save(ctx context.Context, state *entity.WarehouseState) error {
	aisles := make([]aisleRecord, 0, len(state.Aisles))
	for _, a := range state.Aisles {
		aisles = append(aisles, aisleRecord{Name: a.Name, Gondolas: a.GondolaCount})
	}
	aislesJSON, err := json.Marshal(aisles)
	if err != nil {
		return fmt.Errorf("redis: codificar calles: %w", err)
	}
	shelves, err := encodeHash(state.Shelves, func(s entity.Shelf) (string, any) { return s.Position, toShelfRecord(s) })
	if err != nil {
		return err
	}
	products, err := encodeHash(state.Products, func(p entity.Product) (string, any) { return p.ID, toProductRecord(p) })
	if err != nil {
		return err
	}
	txns := make([]any, 0, len(state.Transactions))
	for _, t := range state.Transactions {
		b, err := json.Marshal(toTransactionRecord(t))
		if err != nil {
			return fmt.Errorf("redis: codificar transacción %s: %w", t.ID, err)
		}
		txns = append(txns, b)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.aislesKey, r.shelvesKey, r.productsKey, r.txnsKey)
		pipe.Set(ctx, r.aislesKey, aislesJSON, 0)
		if len(shelves) > 0 {
			pipe.HSet(ctx, r.shelvesKey, shelves)
		}
		if len(products) > 0 {
			pipe.HSet(ctx, r.productsKey, products)
		}
		if len(txns) > 0 {
			pipe.RPush(ctx, r.txnsKey, txns...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: guardar almacén: %w", err)
	}
	return nil
}

// Apply persiste una mutación dentro de un MULTI/EXEC.
func (r *StateRepo) Apply(ctx context.Context, change repository.StateChange) error {
	exists, err := r.client.HExists(ctx, r.shelvesKey, change.Shelf.Position).Result()
	if err != nil {
		return fmt.Errorf("redis: hexists estantería: %w", err)
	}
	if !exists {
		return fmt.Errorf("redis: estantería %s: %w", change.Shelf.Position, domain.ErrNotFound)
	}

	shelfJSON, err := json.Marshal(toShelfRecord(change.Shelf))
	if err != nil {
		return fmt.Errorf("redis: codificar estantería: %w", err)
	}
	txnJSON, err := json.Marshal(toTransactionRecord(change.Transaction))
	if err != nil {
		return fmt.Errorf("redis: codificar transacción: %w", err)
	}
	var productJSON []byte
	if change.UpsertProduct != nil {
		if productJSON, err = json.Marshal(toProductRecord(*change.UpsertProduct)); err != nil {
			return fmt.Errorf("redis: codificar producto: %w", err)
		}
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.shelvesKey, change.Shelf.Position, shelfJSON)
		if change.DeleteProductID != "" {
			pipe.HDel(ctx, r.productsKey, change.DeleteProductID)
		}
		if change.UpsertProduct != nil {
			pipe.HSet(ctx, r.productsKey, change.UpsertProduct.ID, productJSON)
		}
		pipe.RPush(ctx, r.txnsKey, txnJSON)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: aplicar %s en %s: %w", change.Transaction.Type, change.Shelf.Position, err)
	}
	return nil
}

// encodeHash serializa cada elemento como campo → JSON para HSET.
func encodeHash[T any](items []T, field func(T) (string, any)) (map[string]any, error) {
	out := make(map[string]any, len(items))
	for _, it := range items {
		k, v := field(it)
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("redis: codificar %s: %w", k, err)
		}
		out[k] = b
	}
	return out, nil
}
