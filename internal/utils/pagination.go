package utils

// Pagination décrit la fenêtre courante d'une liste paginée
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPagination calcule les métadonnées : pages = ceil(total/limit),
// hasNext = page < pages, hasPrev = page > 1. Un total nul donne zéro page.
func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current: page,
		Pages:   pages,
		Total:   total,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// PaginationMeta enveloppe la pagination dans le champ meta de la réponse
func PaginationMeta(p Pagination) map[string]any {
	return map[string]any{"pagination": p}
}
