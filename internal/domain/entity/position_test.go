package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-estanterias/internal/domain"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
)

func TestPositionKey_FormatoCanonico(t *testing.T) {
	assert.Equal(t, "Rua A-01-01", entity.PositionKey("Rua A", 1, 1))
	assert.Equal(t, "Rua F-20-06", entity.PositionKey("Rua F", 20, 6))
}

func TestParsePosition_IdaYVuelta(t *testing.T) {
	for _, tc := range []struct {
		aisle          string
		gondola, level int
	}{
		{"Rua A", 1, 1},
		{"Rua C", 17, 6},
		{"Doca-Norte", 9, 3},
	} {
		aisle, g, l, err := entity.ParsePosition(entity.PositionKey(tc.aisle, tc.gondola, tc.level))
		require.NoError(t, err)
		assert.Equal(t, tc.aisle, aisle)
		assert.Equal(t, tc.gondola, g)
		assert.Equal(t, tc.level, l)
	}
}

func TestParsePosition_Invalida(t *testing.T) {
	for _, key := range []string{"", "Rua A", "Rua A-01", "-01-01", "Rua A-1-01", "Rua A-01-07", "Rua A-00-01", "Rua A-xx-01"} {
		_, _, _, err := entity.ParsePosition(key)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, key)
	}
}

func TestParseStatusFilter(t *testing.T) {
	f, err := entity.ParseStatusFilter("")
	require.NoError(t, err)
	assert.Equal(t, entity.FilterAll, f)

	f, err = entity.ParseStatusFilter("occupied")
	require.NoError(t, err)
	assert.True(t, f.Matches(entity.Shelf{Status: entity.ShelfStatusOccupied}))
	assert.False(t, f.Matches(entity.Shelf{Status: entity.ShelfStatusAvailable}))

	_, err = entity.ParseStatusFilter("broken")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewStats(t *testing.T) {
	s := entity.NewStats(6, 1)
	assert.Equal(t, 5, s.Available)
	assert.Equal(t, 16.7, s.OccupancyRate.InexactFloat64())

	assert.Equal(t, "33.3", entity.NewStats(3, 1).OccupancyRate.String())
	assert.Equal(t, "66.7", entity.NewStats(3, 2).OccupancyRate.String())
	assert.True(t, entity.NewStats(0, 0).OccupancyRate.IsZero())
}
