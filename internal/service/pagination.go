package service

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageInfo describes the slice of a list that was returned.
type PageInfo struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

func paginate[T any](items []T, page, limit int) ([]T, PageInfo) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page <= 0 {
		page = 1
	}
	total := len(items)
	info := PageInfo{Page: page, Limit: limit, Total: total, TotalPages: (total + limit - 1) / limit}

	start := (page - 1) * limit
	if start >= total {
		return []T{}, info
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], info
}
