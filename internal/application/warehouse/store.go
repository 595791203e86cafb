package warehouse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
	"github.com/jhoicas/wms-estanterias/internal/domain/repository"
)

// DefaultRecentTransactions cantidad de transacciones incluidas en Snapshot.
const DefaultRecentTransactions = 50

// Prefijos de los IDs generados por el almacén.
const (
	ProductIDPrefix     = "PROD-"
	TransactionIDPrefix = "TXN-"
)

// Options ajustes opcionales del Store. Los campos vacíos toman valores por defecto.
type Options struct {
	RecentTransactions int
	Now                func() time.Time
	NewID              func() string
}

// Store es el dueño exclusivo del estado del almacén: calles, estanterías, productos
// y el registro de transacciones. Todas las mutaciones pasan por sus operaciones,
// que se ejecutan bajo un único candado de escritura; las lecturas comparten el candado
// en modo lectura y devuelven copias.
type Store struct {
	mu          sync.RWMutex
	repo        repository.StateRepository
	now         func() time.Time
	newID       func() string
	recentLimit int

	aisles       []entity.Aisle
	order        []string
	shelves      map[string]entity.Shelf
	products     map[string]entity.Product
	transactions []entity.Transaction
}

// NewStore construye un almacén vacío. repo puede ser nil (solo memoria).
func NewStore(repo repository.StateRepository, opts Options) *Store {
	s := &Store{
		repo:        repo,
		now:         opts.Now,
		newID:       opts.NewID,
		recentLimit: opts.RecentTransactions,
		shelves:     map[string]entity.Shelf{},
		products:    map[string]entity.Product{},
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	if s.recentLimit <= 0 {
		s.recentLimit = DefaultRecentTransactions
	}
	return s
}

// Initialize crea todas las estanterías de las calles indicadas como disponibles,
// descarta productos y transacciones previas y persiste el resultado si hay repositorio.
func (s *Store) Initialize(ctx context.Context, aisles []entity.Aisle) error {
	if err := ValidateAisles(aisles); err != nil {
		return err
	}
	state := buildGrid(aisles, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo != nil {
		if err := s.repo.Save(ctx, state); err != nil {
			return fmt.Errorf("guardar almacén inicial: %w", err)
		}
	}
	s.replace(state)
	return nil
}

// Load restaura el estado desde el repositorio. Devuelve false si no hay repositorio
// o si el backend no tiene nada guardado; en ese caso el estado en memoria no cambia.
func (s *Store) Load(ctx context.Context) (bool, error) {
	if s.repo == nil {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("cargar almacén: %w", err)
	}
	if state == nil {
		return false, nil
	}
	ordered, err := checkState(state)
	if err != nil {
		return false, err
	}
	s.replace(ordered)
	return true, nil
}

// replace sustituye todo el estado en memoria. Requiere el candado de escritura.
func (s *Store) replace(state *entity.WarehouseState) {
	s.aisles = append([]entity.Aisle(nil), state.Aisles...)
	s.order = make([]string, 0, len(state.Shelves))
	s.shelves = make(map[string]entity.Shelf, len(state.Shelves))
	for _, sh := range state.Shelves {
		s.order = append(s.order, sh.Position)
		s.shelves[sh.Position] = sh
	}
	s.products = make(map[string]entity.Product, len(state.Products))
	for _, p := range state.Products {
		s.products[p.ID] = p
	}
	s.transactions = append([]entity.Transaction(nil), state.Transactions...)
}

// persist envía el cambio al repositorio antes de publicarlo en memoria.
func (s *Store) persist(ctx context.Context, change repository.StateChange) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Apply(ctx, change); err != nil {
		return fmt.Errorf("persistir %s en %s: %w", change.Transaction.Type, change.Transaction.Position, err)
	}
	return nil
}

func (s *Store) nextTransaction(kind, position, productID string, at time.Time, details string) entity.Transaction {
	var seq int64 = 1
	if n := len(s.transactions); n > 0 {
		seq = s.transactions[n-1].Sequence + 1
	}
	return entity.Transaction{
		ID:        TransactionIDPrefix + s.newID(),
		Sequence:  seq,
		Type:      kind,
		Position:  position,
		ProductID: productID,
		Timestamp: at,
		Details:   details,
	}
}

// buildGrid genera las estanterías en orden canónico: calle, góndola, nivel.
func buildGrid(aisles []entity.Aisle, now time.Time) *entity.WarehouseState {
	total := 0
	for _, a := range aisles {
		total += a.ShelfCount()
	}
	shelves := make([]entity.Shelf, 0, total)
	for _, a := range aisles {
		for g := 1; g <= a.GondolaCount; g++ {
			for l := 1; l <= entity.LevelsPerGondola; l++ {
				shelves = append(shelves, entity.Shelf{
					Position:    entity.PositionKey(a.Name, g, l),
					Aisle:       a.Name,
					Gondola:     g,
					Level:       l,
					Status:      entity.ShelfStatusAvailable,
					LastUpdated: now,
				})
			}
		}
	}
	return &entity.WarehouseState{
		Aisles:  append([]entity.Aisle(nil), aisles...),
		Shelves: shelves,
	}
}
