package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPage(t *testing.T) {
	p := PageRequest{}
	p.DefaultPage()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)

	p = PageRequest{Page: 3, Limit: 500}
	p.DefaultPage()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.Limit, "el límite se acota a 100")

	assert.Equal(t, 200, p.Offset(), "página 3 con límite 100")
}

func TestNewPageResponse_RedondeaHaciaArriba(t *testing.T) {
	out := NewPageResponse(21, 1, 10)
	assert.Equal(t, int64(21), out.Total)
	assert.Equal(t, 3, out.TotalPages, "21 elementos en páginas de 10 son 3 páginas")
	assert.Equal(t, 1, out.CurrentPage)

	out = NewPageResponse(20, 2, 10)
	assert.Equal(t, 2, out.TotalPages)

	out = NewPageResponse(0, 1, 10)
	assert.Equal(t, 0, out.TotalPages)
}
