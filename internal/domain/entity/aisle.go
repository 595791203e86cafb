package entity

// Aisle representa una calle (rua) del almacén con un número fijo de góndolas.
// Se define al inicializar el almacén y no cambia después.
type Aisle struct {
	Name         string
	GondolaCount int
}

// ShelfCount devuelve cuántas estanterías (góndola × nivel) contiene la calle.
func (a Aisle) ShelfCount() int {
	return a.GondolaCount * LevelsPerGondola
}
