package repository

import (
	"context"

	"forum-api/internal/domain/entity"
)

// CourseRepository defines course persistence. All name matching is
// case-insensitive; the store enforces uniqueness on the lowered name.
type CourseRepository interface {
	// Create inserts the course and fills in its id. A concurrent insert
	// of the same name (any casing) surfaces as a duplicate error from
	// the store; callers retry the lookup.
	Create(ctx context.Context, c *entity.Course) error
	GetByName(ctx context.Context, name string) (*entity.Course, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
