package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockcontrol-api/internal/domain"
)

// applyMovement es el único punto de cálculo de cantidades: estos casos cubren
// los tres tipos de movimiento y las dos políticas de sobregiro.
func TestApplyMovement_Calculo(t *testing.T) {
	cases := []struct {
		name     string
		movType  string
		previous int64
		quantity int64
		policy   overdrawPolicy
		want     int64
	}{
		{"stock_in suma la magnitud", "stock_in", 5, 20, floorAtZero, 25},
		{"stock_in toma valor absoluto", "stock_in", 5, -20, floorAtZero, 25},
		{"stock_out resta la magnitud", "stock_out", 30, 10, floorAtZero, 20},
		{"stock_out toma valor absoluto", "stock_out", 30, -10, floorAtZero, 20},
		{"adjustment fija el valor objetivo", "adjustment", 99, 42, floorAtZero, 42},
		{"stock_out que excede trunca en 0", "stock_out", 3, 10, floorAtZero, 0},
		{"adjustment negativo trunca en 0", "adjustment", 50, -7, floorAtZero, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := applyMovement(tc.movType, tc.previous, tc.quantity, tc.policy)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Con rejectOverdraw un resultado negativo no se trunca: se rechaza la línea.
func TestApplyMovement_RechazaSobregiro(t *testing.T) {
	_, err := applyMovement("stock_out", 2, 10, rejectOverdraw)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = applyMovement("adjustment", 50, -7, rejectOverdraw)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// En el límite exacto no hay sobregiro.
	got, err := applyMovement("stock_out", 10, 10, rejectOverdraw)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

// Un tipo desconocido nunca llega a mutar nada.
func TestApplyMovement_TipoInvalido(t *testing.T) {
	_, err := applyMovement("transfer", 5, 3, floorAtZero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
