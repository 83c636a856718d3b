package service

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// clampPagination applies the server-side bounds: negative skip is treated as
// zero, limits outside [1, 1000] fall back to the default or the ceiling.
func clampPagination(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}
