package util

const DefaultPageSize = 10

// Calculate turns a zero-based page number into an offset/limit pair.
// skip = page*limit, matching the client's query contract.
func Calculate(page, limit int) (offset, size int) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 || limit > 100 {
		limit = DefaultPageSize
	}
	return page * limit, limit
}
