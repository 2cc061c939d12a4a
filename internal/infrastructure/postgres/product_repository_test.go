package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

func TestBuildProductWhere_PliegaAmbosLadosDeLaBusqueda(t *testing.T) {
	where, args := buildProductWhere(repository.ProductFilter{Search: "cafe"})

	// El término llega plegado del caso de uso; las columnas se pliegan en SQL
	// para que "Café" sea alcanzable con "café" y con "cafe".
	assert.Contains(t, where, `translate(lower(p.name), 'áéíóúüñ', 'aeiouun') LIKE $1`)
	assert.Contains(t, where, `translate(lower(p.sku), 'áéíóúüñ', 'aeiouun') LIKE $1`)
	assert.Contains(t, where, `translate(lower(p.description), 'áéíóúüñ', 'aeiouun') LIKE $1`)
	assert.Equal(t, []any{"%cafe%"}, args)
}

func TestBuildProductWhere_CombinaFiltros(t *testing.T) {
	where, args := buildProductWhere(repository.ProductFilter{
		Search:       "azucar",
		CategoryID:   "cat-1",
		LowStockOnly: true,
	})

	assert.Contains(t, where, `WHERE p.is_active`)
	assert.Contains(t, where, `p.category_id = $2`)
	assert.Contains(t, where, `p.quantity <= p.low_stock_threshold`)
	assert.Equal(t, []any{"%azucar%", "cat-1"}, args)
}

func TestFoldExpr_MismaTablaDeDiacriticosQueElPlegadoEnGo(t *testing.T) {
	// Los dos alfabetos de translate deben tener la misma longitud en runas,
	// si no PostgreSQL trunca el reemplazo.
	from := []rune("áéíóúüñ")
	to := []rune("aeiouun")
	assert.Equal(t, len(from), len(to))
}
