package utils

// Pagination is the metadata block attached to every paginated listing.
type Pagination struct {
	Total       int64 `json:"total"`
	Count       int   `json:"count"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// Paginated wraps a page of results with its pagination metadata.
type Paginated struct {
	Data interface{} `json:"data"`
	Meta struct {
		Pagination Pagination `json:"pagination"`
	} `json:"meta"`
}

func NewPaginated(data interface{}, total int64, count, page, perPage int) Paginated {
	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	var p Paginated
	p.Data = data
	p.Meta.Pagination = Pagination{
		Total:       total,
		Count:       count,
		PerPage:     perPage,
		CurrentPage: page,
		TotalPages:  totalPages,
	}
	return p
}
