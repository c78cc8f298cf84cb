package store

// PageRequest describes the slice of a listing to fetch: a zero-based page
// number and a page size.
type PageRequest struct {
	Number int
	Size   int
}

// NewPageRequest returns a PageRequest with sane bounds applied: negative
// page numbers become 0 and non-positive sizes fall back to the default.
func NewPageRequest(number, size int) PageRequest {
	if number < 0 {
		number = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return PageRequest{Number: number, Size: size}
}

// DefaultPageSize is applied when a page request carries no explicit size.
const DefaultPageSize = 10

// Offset returns the row offset this request maps to.
func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// Page is one slice of a paginated listing together with the total number of
// matching rows.
type Page[T any] struct {
	Content    []T   `json:"content"`
	TotalCount int64 `json:"total_count"`
	Number     int   `json:"page"`
	Size       int   `json:"size"`
}

// NewPage builds a Page from content, the originating request, and the total
// match count reported by storage.
func NewPage[T any](content []T, req PageRequest, totalCount int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:    content,
		TotalCount: totalCount,
		Number:     req.Number,
		Size:       req.Size,
	}
}

// TotalPages returns how many pages of this size the full result spans.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalCount + int64(p.Size) - 1) / int64(p.Size))
}

// MapPage converts a Page of one element type into a Page of another,
// preserving the paging metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	content := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return Page[U]{
		Content:    content,
		TotalCount: p.TotalCount,
		Number:     p.Number,
		Size:       p.Size,
	}
}
