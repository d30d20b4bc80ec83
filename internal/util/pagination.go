package util

const defaultPageSize = 10

// Calculate clamps page/size query values into an offset and limit.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = defaultPageSize
	}
	from = (page - 1) * size
	return from, size
}
