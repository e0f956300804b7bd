package dto

// PageSize is the fixed number of posts per feed page
const PageSize = 10

// Page describes one page of a paginated feed
type Page struct {
	Number     int   `json:"number"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalItems"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// ResolvePage clamps a requested page number against the item total.
// Requests below 1 resolve to the first page and requests past the end
// resolve to the last page, so a stale link never errors. An empty feed
// still has one (empty) page.
func ResolvePage(requested int, totalItems int64, pageSize int) Page {
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    number < totalPages,
		HasPrev:    number > 1,
	}
}

// Offset returns the query offset for the resolved page
func (p Page) Offset(pageSize int) int {
	return (p.Number - 1) * pageSize
}
