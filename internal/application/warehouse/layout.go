package warehouse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/wms-estanterias/internal/domain"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

// DefaultGondolasPerAisle góndolas por calle en el diseño por defecto.
const DefaultGondolasPerAisle = 20

// DefaultAisles diseño por defecto: Rua A a Rua F con 20 góndolas cada una.
func DefaultAisles() []entity.Aisle {
	names := []string{"Rua A", "Rua B", "Rua C", "Rua D", "Rua E", "Rua F"}
	aisles := make([]entity.Aisle, 0, len(names))
	for _, n := range names {
		aisles = append(aisles, entity.Aisle{Name: n, GondolaCount: DefaultGondolasPerAisle})
	}
	return aisles
}

// ParseAisles interpreta un diseño con formato "Rua A:20,Rua B:12".
// Una cadena vacía devuelve el diseño por defecto.
func ParseAisles(layout string) ([]entity.Aisle, error) {
	if strings.TrimSpace(layout) == "" {
		return DefaultAisles(), nil
	}
	var aisles []entity.Aisle
	for _, item := range strings.Split(layout, ",") {
		name, count, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("calle %q sin número de góndolas: %w", strings.TrimSpace(item), domain.ErrInvalidInput)
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil {
			return nil, fmt.Errorf("calle %q: góndolas %q: %w", strings.TrimSpace(name), count, domain.ErrInvalidInput)
		}
		aisles = append(aisles, entity.Aisle{Name: strings.TrimSpace(name), GondolaCount: n})
	}
	if err := ValidateAisles(aisles); err != nil {
		return nil, err
	}
	return aisles, nil
}

// ValidateAisles verifica nombres únicos y no vacíos y góndolas dentro de [1, 99].
// Una lista vacía es válida (almacén sin estanterías).
func ValidateAisles(aisles []entity.Aisle) error {
	seen := make(map[string]struct{}, len(aisles))
	for _, a := range aisles {
		if a.Name == "" || strings.TrimSpace(a.Name) != a.Name {
			return fmt.Errorf("nombre de calle %q: %w", a.Name, domain.ErrInvalidInput)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("calle %q repetida: %w", a.Name, domain.ErrInvalidInput)
		}
		seen[a.Name] = struct{}{}
		if a.GondolaCount < 1 || a.GondolaCount > entity.MaxGondolas {
			return fmt.Errorf("calle %q: %d góndolas fuera de [1, %d]: %w", a.Name, a.GondolaCount, entity.MaxGondolas, domain.ErrInvalidInput)
		}
	}
	return nil
}
