package dto

// PageRequest paginación para listados. Las páginas son 1-based.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset convierte la página 1-based a offset de filas.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas de listado.
type PageResponse struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
}

// NewPageResponse calcula total_pages = ceil(total / limit).
func NewPageResponse(total int64, page, limit int) PageResponse {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return PageResponse{Total: total, TotalPages: pages, CurrentPage: page}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
