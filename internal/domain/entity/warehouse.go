package entity

// WarehouseState foto completa del almacén, usada para persistir y restaurar.
// Shelves va en orden canónico (calle, góndola, nivel) y Transactions en orden de creación.
type WarehouseState struct {
	Aisles       []Aisle
	Shelves      []Shelf
	Products     []Product
	Transactions []Transaction
}
