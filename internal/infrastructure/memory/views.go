package memory

import (
	"context"

	"forum-api/internal/domain/entity"
	"forum-api/internal/domain/repository"
)

// The repository interfaces share method names (Create, Count, ...), so a
// single Store cannot satisfy all three directly. These views expose one
// interface each over the same underlying data.

type UserStore struct{ s *Store }
type CourseStore struct{ s *Store }
type TopicStore struct{ s *Store }

func (s *Store) Users() *UserStore     { return &UserStore{s: s} }
func (s *Store) Courses() *CourseStore { return &CourseStore{s: s} }
func (s *Store) Topics() *TopicStore   { return &TopicStore{s: s} }

func (v *UserStore) Create(ctx context.Context, u *entity.User) error {
	return v.s.CreateUser(ctx, u)
}

func (v *UserStore) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return v.s.GetUserByID(ctx, id)
}

func (v *UserStore) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return v.s.GetUserByUsername(ctx, username)
}

func (v *UserStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return v.s.GetUserByEmail(ctx, email)
}

func (v *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return v.s.UserExistsByUsername(ctx, username)
}

func (v *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return v.s.UserExistsByEmail(ctx, email)
}

func (v *UserStore) Count(ctx context.Context) (int64, error) {
	return v.s.CountUsers(ctx)
}

func (v *CourseStore) Create(ctx context.Context, c *entity.Course) error {
	return v.s.CreateCourse(ctx, c)
}

func (v *CourseStore) GetByName(ctx context.Context, name string) (*entity.Course, error) {
	return v.s.GetCourseByName(ctx, name)
}

func (v *CourseStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	return v.s.CourseExistsByName(ctx, name)
}

func (v *CourseStore) Count(ctx context.Context) (int64, error) {
	return v.s.CountCourses(ctx)
}

func (v *TopicStore) Create(ctx context.Context, t *entity.Topic) error {
	return v.s.CreateTopic(ctx, t)
}

func (v *TopicStore) GetByID(ctx context.Context, id int64) (*entity.Topic, error) {
	return v.s.GetTopicByID(ctx, id)
}

func (v *TopicStore) Update(ctx context.Context, t *entity.Topic) (bool, error) {
	return v.s.UpdateTopic(ctx, t)
}

func (v *TopicStore) Delete(ctx context.Context, id int64) (bool, error) {
	return v.s.DeleteTopic(ctx, id)
}

func (v *TopicStore) List(ctx context.Context, q repository.ListQuery) (*repository.Page, error) {
	return v.s.ListTopics(ctx, q)
}

func (v *TopicStore) ListByAuthor(ctx context.Context, authorID int64) ([]*entity.Topic, error) {
	return v.s.ListTopicsByAuthor(ctx, authorID)
}

func (v *TopicStore) ListByCourseName(ctx context.Context, courseName string) ([]*entity.Topic, error) {
	return v.s.ListTopicsByCourseName(ctx, courseName)
}

func (v *TopicStore) Count(ctx context.Context) (int64, error) {
	return v.s.CountTopics(ctx)
}

func (v *TopicStore) CountByCourseName(ctx context.Context, courseName string) (int64, error) {
	return v.s.CountTopicsByCourseName(ctx, courseName)
}

var (
	_ repository.UserRepository   = (*UserStore)(nil)
	_ repository.CourseRepository = (*CourseStore)(nil)
	_ repository.TopicRepository  = (*TopicStore)(nil)
)
