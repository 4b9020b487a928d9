package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"forum-api/internal/domain/apperrors"
	"forum-api/internal/domain/entity"
	"forum-api/internal/domain/repository"
)

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (name, description)
		VALUES ($1, $2)
		RETURNING id
	`, c.Name, c.Description)

	if err := row.Scan(&c.ID); err != nil {
		if uniqueViolation(err, "courses_name_lower_key") {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *CourseRepository) GetByName(ctx context.Context, name string) (*entity.Course, error) {
	c := &entity.Course{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description
		FROM courses
		WHERE lower(name) = lower($1)
	`, name)

	if err := row.Scan(&c.ID, &c.Name, &c.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM courses WHERE lower(name) = lower($1))`, name).Scan(&exists)
	return exists, err
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM courses`).Scan(&n)
	return n, err
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
