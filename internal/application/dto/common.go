package dto

// PageRequest paginación 1-based para listados (query params page/limit).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto y topes.
func (p *PageRequest) Normalize() {
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

// Offset devuelve el desplazamiento equivalente.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// NewPagination construye los metadatos a partir del total y la página pedida.
func NewPagination(total int, page PageRequest) Pagination {
	totalPages := total / page.Limit
	if total%page.Limit != 0 {
		totalPages++
	}
	return Pagination{Total: total, Page: page.Page, TotalPages: totalPages}
}
