package warehouse

import (
	"context"
	"fmt"

	"github.com/jhoicas/wms-estanterias/internal/domain"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
	"github.com/jhoicas/wms-estanterias/internal/domain/repository"
)

// OccupyShelf coloca un producto nuevo en una estantería disponible.
// Crea exactamente un producto y una transacción "add" y modifica solo esa estantería.
func (s *Store) OccupyShelf(ctx context.Context, position string, draft entity.ProductDraft) (entity.Product, entity.Shelf, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shelf, ok := s.shelves[position]
	if !ok {
		return entity.Product{}, entity.Shelf{}, fmt.Errorf("estantería %q: %w", position, domain.ErrNotFound)
	}
	if shelf.IsOccupied() {
		return entity.Product{}, entity.Shelf{}, fmt.Errorf("estantería %q: %w", position, domain.ErrAlreadyOccupied)
	}
	if err := draft.Validate(); err != nil {
		return entity.Product{}, entity.Shelf{}, err
	}

	now := s.now()
	product := entity.Product{
		ID:        ProductIDPrefix + s.newID(),
		Position:  position,
		CreatedAt: now,
	}.Apply(draft)

	shelf.Status = entity.ShelfStatusOccupied
	shelf.ProductID = product.ID
	shelf.LastUpdated = now

	txn := s.nextTransaction(entity.TransactionTypeAdd, position, product.ID, now,
		fmt.Sprintf("Produto %s adicionado à prateleira %s", product.Name, position))

	if err := s.persist(ctx, repository.StateChange{Shelf: shelf, UpsertProduct: &product, Transaction: txn}); err != nil {
		return entity.Product{}, entity.Shelf{}, err
	}
	s.products[product.ID] = product
	s.shelves[position] = shelf
	s.transactions = append(s.transactions, txn)
	return product, shelf, nil
}

// VacateShelf retira el producto de una estantería ocupada y lo elimina.
// La transacción "remove" conserva el ID del producto eliminado para auditoría.
func (s *Store) VacateShelf(ctx context.Context, position string) (entity.Shelf, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shelf, ok := s.shelves[position]
	if !ok {
		return entity.Shelf{}, fmt.Errorf("estantería %q: %w", position, domain.ErrNotFound)
	}
	if !shelf.IsOccupied() {
		return entity.Shelf{}, fmt.Errorf("estantería %q: %w", position, domain.ErrAlreadyAvailable)
	}

	now := s.now()
	productID := shelf.ProductID
	shelf.Status = entity.ShelfStatusAvailable
	shelf.ProductID = ""
	shelf.LastUpdated = now

	txn := s.nextTransaction(entity.TransactionTypeRemove, position, productID, now,
		fmt.Sprintf("Produto removido da prateleira %s", position))

	if err := s.persist(ctx, repository.StateChange{Shelf: shelf, DeleteProductID: productID, Transaction: txn}); err != nil {
		return entity.Shelf{}, err
	}
	delete(s.products, productID)
	s.shelves[position] = shelf
	s.transactions = append(s.transactions, txn)
	return shelf, nil
}

// EditProduct reemplaza los campos editables de un producto sin tocar su estantería.
func (s *Store) EditProduct(ctx context.Context, productID string, draft entity.ProductDraft) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.products[productID]
	if !ok {
		return entity.Product{}, fmt.Errorf("producto %q: %w", productID, domain.ErrNotFound)
	}
	if err := draft.Validate(); err != nil {
		return entity.Product{}, err
	}

	now := s.now()
	updated := current.Apply(draft)
	updated.UpdatedAt = &now

	txn := s.nextTransaction(entity.TransactionTypeEdit, current.Position, productID, now,
		fmt.Sprintf("Produto %s editado na prateleira %s", updated.Name, current.Position))

	if err := s.persist(ctx, repository.StateChange{
		Shelf:         s.shelves[current.Position],
		UpsertProduct: &updated,
		Transaction:   txn,
	}); err != nil {
		return entity.Product{}, err
	}
	s.products[productID] = updated
	s.transactions = append(s.transactions, txn)
	return updated, nil
}
