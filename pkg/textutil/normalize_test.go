package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/stockcontrol-api/pkg/textutil"
)

func TestFold_QuitaDiacriticosYMayusculas(t *testing.T) {
	assert.Equal(t, "cafe", textutil.Fold("  Café "))
	assert.Equal(t, "nino", textutil.Fold("NIÑO"))
	assert.Equal(t, "azucar morena", textutil.Fold("Azúcar Morena"))
}

func TestFold_TextoPlanoQuedaIgual(t *testing.T) {
	assert.Equal(t, "sku-001", textutil.Fold("SKU-001"))
	assert.Equal(t, "", textutil.Fold("   "))
}
