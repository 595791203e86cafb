package warehouse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-estanterias/internal/application/warehouse"
	"github.com/jhoicas/wms-estanterias/internal/domain"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

func TestParseAisles_VacioUsaDisenoPorDefecto(t *testing.T) {
	aisles, err := warehouse.ParseAisles("  ")
	require.NoError(t, err)
	assert.Equal(t, warehouse.DefaultAisles(), aisles)
	require.Len(t, aisles, 6)
	assert.Equal(t, entity.Aisle{Name: "Rua F", GondolaCount: 20}, aisles[5])
}

func TestParseAisles_Formato(t *testing.T) {
	aisles, err := warehouse.ParseAisles("Rua A:3, Doca-Norte : 12")
	require.NoError(t, err)
	assert.Equal(t, []entity.Aisle{
		{Name: "Rua A", GondolaCount: 3},
		{Name: "Doca-Norte", GondolaCount: 12},
	}, aisles)
}

func TestParseAisles_Errores(t *testing.T) {
	for _, in := range []string{"Rua A", "Rua A:x", "Rua A:0", ":3", "Rua A:2,Rua A:4", "Rua A:120"} {
		_, err := warehouse.ParseAisles(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, in)
	}
}
