package entity

import "time"

// Tipos de transacción del registro de movimientos.
const (
	TransactionTypeAdd    = "add"    // producto colocado en una estantería
	TransactionTypeRemove = "remove" // estantería vaciada
	TransactionTypeEdit   = "edit"   // producto editado en su lugar
)

// Transaction entrada inmutable del registro de movimientos.
// Sequence crece de uno en uno y define el orden de creación.
type Transaction struct {
	ID        string
	Sequence  int64
	Type      string
	Position  string
	ProductID string
	Timestamp time.Time
	Details   string
}
