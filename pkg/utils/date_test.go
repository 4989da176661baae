package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Data ISO válida", func(t *testing.T) {
		date, err := ParseDate("2026-04-01")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), *date)
	})

	t.Run("Formato inválido retorna erro", func(t *testing.T) {
		date, err := ParseDate("01/04/2026")
		assert.Error(t, err)
		assert.Nil(t, date)
	})

	t.Run("Vazio retorna erro", func(t *testing.T) {
		_, err := ParseDate("")
		assert.Error(t, err)
	})
}
