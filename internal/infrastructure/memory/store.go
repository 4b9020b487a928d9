// Package memory provides mutex-guarded in-memory implementations of the
// repository interfaces. They mirror the Postgres semantics (case-insensitive
// course names, unique indexes, optimistic topic versioning) and back the
// application and handler tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"forum-api/internal/domain/apperrors"
	"forum-api/internal/domain/entity"
	"forum-api/internal/domain/repository"
)

type Store struct {
	mu sync.RWMutex

	users   map[int64]*entity.User
	courses map[int64]*entity.Course
	topics  map[int64]*entity.Topic

	nextUserID   int64
	nextCourseID int64
	nextTopicID  int64
}

func NewStore() *Store {
	return &Store{
		users:   make(map[int64]*entity.User),
		courses: make(map[int64]*entity.Course),
		topics:  make(map[int64]*entity.Topic),
	}
}

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func copyCourse(c *entity.Course) *entity.Course {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func copyTopic(t *entity.Topic) *entity.Topic {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Author = copyUser(t.Author)
	cp.Course = copyCourse(t.Course)
	return &cp
}

// --- UserRepository ---

func (s *Store) CreateUser(ctx context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return apperrors.ErrDuplicateUsername
		}
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return apperrors.ErrDuplicateEmail
		}
	}
	s.nextUserID++
	u.ID = s.nextUserID
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = copyUser(u)
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.users[id]), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *Store) UserExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, _ := s.GetUserByUsername(ctx, username)
	return u != nil, nil
}

func (s *Store) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := s.GetUserByEmail(ctx, email)
	return u != nil, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// --- CourseRepository ---

func (s *Store) CreateCourse(ctx context.Context, c *entity.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.courses {
		if strings.EqualFold(existing.Name, c.Name) {
			return apperrors.ErrConflict
		}
	}
	s.nextCourseID++
	c.ID = s.nextCourseID
	s.courses[c.ID] = copyCourse(c)
	return nil
}

func (s *Store) GetCourseByName(ctx context.Context, name string) (*entity.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if strings.EqualFold(c.Name, name) {
			return copyCourse(c), nil
		}
	}
	return nil, nil
}

func (s *Store) CourseExistsByName(ctx context.Context, name string) (bool, error) {
	c, _ := s.GetCourseByName(ctx, name)
	return c != nil, nil
}

func (s *Store) CountCourses(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.courses)), nil
}

// --- TopicRepository ---

func (s *Store) CreateTopic(ctx context.Context, t *entity.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTopicID++
	t.ID = s.nextTopicID
	t.Version = 0
	t.UpdatedAt = t.CreatedAt
	s.topics[t.ID] = copyTopic(t)
	return nil
}

func (s *Store) GetTopicByID(ctx context.Context, id int64) (*entity.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTopic(s.topics[id]), nil
}

func (s *Store) UpdateTopic(ctx context.Context, t *entity.Topic) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.topics[t.ID]
	if !ok || stored.Version != t.Version {
		return false, nil
	}
	t.UpdatedAt = time.Now().UTC()
	t.Version++
	s.topics[t.ID] = copyTopic(t)
	return true, nil
}

func (s *Store) DeleteTopic(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[id]; !ok {
		return false, nil
	}
	delete(s.topics, id)
	return true, nil
}

func (s *Store) ListTopics(ctx context.Context, q repository.ListQuery) (*repository.Page, error) {
	s.mu.RLock()
	matched := make([]*entity.Topic, 0, len(s.topics))
	for _, t := range s.topics {
		if q.CourseName != "" && !strings.EqualFold(t.Course.Name, q.CourseName) {
			continue
		}
		if q.Search != "" {
			needle := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(t.Title), needle) &&
				!strings.Contains(strings.ToLower(t.Message), needle) {
				continue
			}
		}
		matched = append(matched, copyTopic(t))
	}
	s.mu.RUnlock()

	sortTopics(matched, q.SortBy, q.SortDir)

	total := int64(len(matched))
	start := q.Page * q.Size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Size
	if end > len(matched) {
		end = len(matched)
	}
	return repository.NewPage(matched[start:end], q.Page, q.Size, total), nil
}

func sortTopics(items []*entity.Topic, sortBy, sortDir string) {
	less := func(a, b *entity.Topic) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch sortBy {
	case repository.SortUpdatedAt:
		less = func(a, b *entity.Topic) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case repository.SortTitle:
		less = func(a, b *entity.Topic) bool { return a.Title < b.Title }
	}
	asc := strings.EqualFold(sortDir, "asc")
	sort.SliceStable(items, func(i, j int) bool {
		if asc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}

func (s *Store) ListTopicsByAuthor(ctx context.Context, authorID int64) ([]*entity.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Topic
	for _, t := range s.topics {
		if t.Author.ID == authorID {
			out = append(out, copyTopic(t))
		}
	}
	sortTopics(out, repository.SortCreatedAt, "desc")
	return out, nil
}

func (s *Store) ListTopicsByCourseName(ctx context.Context, courseName string) ([]*entity.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Topic
	for _, t := range s.topics {
		if strings.EqualFold(t.Course.Name, courseName) {
			out = append(out, copyTopic(t))
		}
	}
	sortTopics(out, repository.SortCreatedAt, "desc")
	return out, nil
}

func (s *Store) CountTopics(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.topics)), nil
}

func (s *Store) CountTopicsByCourseName(ctx context.Context, courseName string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, t := range s.topics {
		if strings.EqualFold(t.Course.Name, courseName) {
			n++
		}
	}
	return n, nil
}
