package application

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"forum-api/internal/domain/apperrors"
	"forum-api/internal/domain/entity"
	"forum-api/internal/domain/repository"
)

const (
	titleMinLen      = 5
	titleMaxLen      = 200
	messageMinLen    = 10
	messageMaxLen    = 2000
	courseNameMinLen = 2
	courseNameMaxLen = 100

	defaultPageSize = 10
	maxPageSize     = 100
)

// TopicService owns the topic lifecycle: creation, author-only mutation
// and deletion, and filtered/paginated listings.
type TopicService struct {
	Topics  repository.TopicRepository
	Users   repository.UserRepository
	Courses *CourseService
	Logger  *logrus.Logger
}

func NewTopicService(topics repository.TopicRepository, users repository.UserRepository, courses *CourseService, logger *logrus.Logger) *TopicService {
	return &TopicService{Topics: topics, Users: users, Courses: courses, Logger: logger}
}

// Bounds count characters, not bytes, so multibyte text is measured the
// same way the binding-layer validator measures it.
func validateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n < titleMinLen || n > titleMaxLen {
		return apperrors.NewValidation("title", "must be 5-200 characters long")
	}
	return nil
}

func validateMessage(message string) error {
	if n := utf8.RuneCountInString(message); n < messageMinLen || n > messageMaxLen {
		return apperrors.NewValidation("message", "must be 10-2000 characters long")
	}
	return nil
}

func validateCourseName(name string) error {
	if n := utf8.RuneCountInString(name); n < courseNameMinLen || n > courseNameMaxLen {
		return apperrors.NewValidation("courseName", "must be 2-100 characters long")
	}
	return nil
}

// Create persists a topic for an existing author, resolving (and possibly
// creating) the course as a side effect. Title and message are trimmed;
// createdAt equals updatedAt on the new row.
func (s *TopicService) Create(ctx context.Context, title, message, courseName, authorUsername string) (*entity.Topic, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)

	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateMessage(message); err != nil {
		return nil, err
	}
	if err := validateCourseName(strings.TrimSpace(courseName)); err != nil {
		return nil, err
	}

	author, err := s.Users.GetByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperrors.ErrAuthorNotFound
	}

	course, err := s.Courses.GetOrCreate(ctx, courseName)
	if err != nil {
		return nil, err
	}

	topic := &entity.Topic{
		Title:     title,
		Message:   message,
		Author:    author,
		Course:    course,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Topics.Create(ctx, topic); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"topic_id": topic.ID,
			"author":   author.Username,
			"course":   course.Name,
		}).Info("topic created")
	}
	return topic, nil
}

// Update applies a partial update on behalf of requestingUsername. Only
// the author may update; blank or omitted fields keep their stored value.
// A provided courseName re-resolves the course via get-or-create. A
// concurrent writer winning the version race yields ErrConflict.
func (s *TopicService) Update(ctx context.Context, id int64, title, message, courseName, requestingUsername string) (*entity.Topic, error) {
	topic, err := s.Topics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperrors.ErrTopicNotFound
	}
	if topic.Author.Username != requestingUsername {
		return nil, apperrors.ErrForbidden
	}

	if t := strings.TrimSpace(title); t != "" {
		if err := validateTitle(t); err != nil {
			return nil, err
		}
		topic.Title = t
	}
	if m := strings.TrimSpace(message); m != "" {
		if err := validateMessage(m); err != nil {
			return nil, err
		}
		topic.Message = m
	}
	if cn := strings.TrimSpace(courseName); cn != "" {
		if err := validateCourseName(cn); err != nil {
			return nil, err
		}
		course, err := s.Courses.GetOrCreate(ctx, cn)
		if err != nil {
			return nil, err
		}
		topic.Course = course
	}

	updated, err := s.Topics.Update(ctx, topic)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Version mismatch: either a concurrent writer bumped it or the
		// topic was deleted in between.
		current, err := s.Topics.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, apperrors.ErrTopicNotFound
		}
		return nil, apperrors.ErrConflict
	}
	return topic, nil
}

// Delete hard-deletes a topic on behalf of its author.
func (s *TopicService) Delete(ctx context.Context, id int64, requestingUsername string) error {
	topic, err := s.Topics.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if topic == nil {
		return apperrors.ErrTopicNotFound
	}
	if topic.Author.Username != requestingUsername {
		return apperrors.ErrForbidden
	}

	deleted, err := s.Topics.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrTopicNotFound
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"topic_id": id,
			"author":   requestingUsername,
		}).Info("topic deleted")
	}
	return nil
}

func (s *TopicService) Get(ctx context.Context, id int64) (*entity.Topic, error) {
	topic, err := s.Topics.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperrors.ErrTopicNotFound
	}
	return topic, nil
}

// List returns one page of topics. Page/size are normalized here so the
// repository always sees sane bounds; default ordering is createdAt desc.
func (s *TopicService) List(ctx context.Context, q repository.ListQuery) (*repository.Page, error) {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = defaultPageSize
	}
	if q.Size > maxPageSize {
		q.Size = maxPageSize
	}
	if q.SortBy == "" {
		q.SortBy = repository.SortCreatedAt
	}
	q.CourseName = strings.TrimSpace(q.CourseName)
	q.Search = strings.TrimSpace(q.Search)
	return s.Topics.List(ctx, q)
}

// ListByAuthor returns the author's topics, newest first. An unknown
// username yields an empty list, not an error.
func (s *TopicService) ListByAuthor(ctx context.Context, username string) ([]*entity.Topic, error) {
	author, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return []*entity.Topic{}, nil
	}
	return s.Topics.ListByAuthor(ctx, author.ID)
}

func (s *TopicService) ListByCourse(ctx context.Context, courseName string) ([]*entity.Topic, error) {
	return s.Topics.ListByCourseName(ctx, courseName)
}

func (s *TopicService) CountTopics(ctx context.Context) (int64, error) {
	return s.Topics.Count(ctx)
}

func (s *TopicService) CountByCourse(ctx context.Context, courseName string) (int64, error) {
	return s.Topics.CountByCourseName(ctx, courseName)
}

// IsOwner reports whether the topic exists and username is its author.
func (s *TopicService) IsOwner(ctx context.Context, id int64, username string) (bool, error) {
	topic, err := s.Topics.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return topic != nil && topic.Author.Username == username, nil
}
