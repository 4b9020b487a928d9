package repository

import (
	"context"

	"forum-api/internal/domain/entity"
)

// Sort fields accepted by topic listings. Anything else falls back to
// SortCreatedAt.
const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortTitle     = "title"
)

// ListQuery carries pagination, sorting and conjunctive filters for topic
// listings. Page is zero-based.
type ListQuery struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string // "asc" or "desc"; default desc

	// CourseName filters by course name, case-insensitively. Search
	// matches case-insensitively as a substring of title or message.
	CourseName string
	Search     string
}

// Page is one page of topics plus derived pagination metadata.
type Page struct {
	Items      []*entity.Topic
	Number     int
	Size       int
	TotalItems int64
	TotalPages int
	First      bool
	Last       bool
}

// NewPage derives the pagination metadata for one page of results.
// first/last and totalPages are computed, never stored.
func NewPage(items []*entity.Topic, page, size int, total int64) *Page {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page{
		Items:      items,
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		First:      page == 0,
		Last:       totalPages == 0 || page >= totalPages-1,
	}
}

// TopicRepository defines topic persistence. GetByID returns (nil, nil)
// when the topic does not exist. Update applies an optimistic version
// check: it reports zero rows affected when the stored version differs,
// letting the service distinguish a lost race from a deleted row.
type TopicRepository interface {
	Create(ctx context.Context, t *entity.Topic) error
	GetByID(ctx context.Context, id int64) (*entity.Topic, error)
	Update(ctx context.Context, t *entity.Topic) (updated bool, err error)
	Delete(ctx context.Context, id int64) (deleted bool, err error)
	List(ctx context.Context, q ListQuery) (*Page, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Topic, error)
	ListByCourseName(ctx context.Context, courseName string) ([]*entity.Topic, error)
	Count(ctx context.Context) (int64, error)
	CountByCourseName(ctx context.Context, courseName string) (int64, error)
}
