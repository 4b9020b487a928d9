package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"forum-api/internal/domain/entity"
	"forum-api/internal/domain/repository"
)

const topicColumns = `
	t.id, t.title, t.message, t.version, t.created_at, t.updated_at,
	u.id, u.username, u.email, u.password_hash, u.created_at, u.updated_at,
	c.id, c.name, c.description`

const topicFrom = `
	FROM topics t
	JOIN users u ON u.id = t.author_id
	JOIN courses c ON c.id = t.course_id`

// sortColumns whitelists caller-supplied sort fields; anything else falls
// back to created_at.
var sortColumns = map[string]string{
	repository.SortCreatedAt: "t.created_at",
	repository.SortUpdatedAt: "t.updated_at",
	repository.SortTitle:     "t.title",
}

type TopicRepository struct {
	pool *pgxpool.Pool
}

func NewTopicRepository(pool *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{pool: pool}
}

func scanTopic(row pgx.Row) (*entity.Topic, error) {
	t := &entity.Topic{Author: &entity.User{}, Course: &entity.Course{}}
	err := row.Scan(
		&t.ID, &t.Title, &t.Message, &t.Version, &t.CreatedAt, &t.UpdatedAt,
		&t.Author.ID, &t.Author.Username, &t.Author.Email, &t.Author.PasswordHash,
		&t.Author.CreatedAt, &t.Author.UpdatedAt,
		&t.Course.ID, &t.Course.Name, &t.Course.Description,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TopicRepository) Create(ctx context.Context, t *entity.Topic) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO topics (title, message, author_id, course_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, version, created_at, updated_at
	`, t.Title, t.Message, t.Author.ID, t.Course.ID, t.CreatedAt)

	return row.Scan(&t.ID, &t.Version, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*entity.Topic, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+topicColumns+topicFrom+` WHERE t.id = $1`, id)
	t, err := scanTopic(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// Update writes title/message/course_id guarded by the optimistic version
// check. It reports false when no row matched, either because the topic is
// gone or because a concurrent writer bumped the version first.
func (r *TopicRepository) Update(ctx context.Context, t *entity.Topic) (bool, error) {
	t.UpdatedAt = time.Now().UTC()
	res, err := r.pool.Exec(ctx, `
		UPDATE topics
		SET title = $1, message = $2, course_id = $3, updated_at = $4, version = version + 1
		WHERE id = $5 AND version = $6
	`, t.Title, t.Message, t.Course.ID, t.UpdatedAt, t.ID, t.Version)
	if err != nil {
		return false, err
	}
	if res.RowsAffected() == 0 {
		return false, nil
	}
	t.Version++
	return true, nil
}

func (r *TopicRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search text.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *TopicRepository) List(ctx context.Context, q repository.ListQuery) (*repository.Page, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)

	if q.CourseName != "" {
		args = append(args, q.CourseName)
		where = append(where, fmt.Sprintf("lower(c.name) = lower($%d)", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		where = append(where, fmt.Sprintf("(t.title ILIKE $%d OR t.message ILIKE $%d)", len(args), len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*)`+topicFrom+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = sortColumns[repository.SortCreatedAt]
	}
	dir := "DESC"
	if strings.EqualFold(q.SortDir, "asc") {
		dir = "ASC"
	}

	args = append(args, q.Size, q.Page*q.Size)
	query := fmt.Sprintf(`SELECT%s%s%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		topicColumns, topicFrom, cond, col, dir, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Topic, 0, q.Size)
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return repository.NewPage(items, q.Page, q.Size, total), nil
}

func (r *TopicRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Topic, error) {
	return r.listWhere(ctx, `WHERE t.author_id = $1`, authorID)
}

func (r *TopicRepository) ListByCourseName(ctx context.Context, courseName string) ([]*entity.Topic, error) {
	return r.listWhere(ctx, `WHERE lower(c.name) = lower($1)`, courseName)
}

func (r *TopicRepository) listWhere(ctx context.Context, where string, arg any) ([]*entity.Topic, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+topicColumns+topicFrom+` `+where+` ORDER BY t.created_at DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*entity.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *TopicRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM topics`).Scan(&n)
	return n, err
}

func (r *TopicRepository) CountByCourseName(ctx context.Context, courseName string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM topics t
		JOIN courses c ON c.id = t.course_id
		WHERE lower(c.name) = lower($1)
	`, courseName).Scan(&n)
	return n, err
}

var _ repository.TopicRepository = (*TopicRepository)(nil)
