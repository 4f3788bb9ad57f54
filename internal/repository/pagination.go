package repository

const (
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 50
)

// PageVerify clamps page to 1-indexed and pageSize into the allowed range.
func PageVerify(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < MinPageSize || *pageSize > MaxPageSize {
		*pageSize = DefaultPageSize
	}
}

// Offset converts a 1-indexed page into a row offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// TotalPages rounds the comment count up to whole pages.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
