package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"forum-api/internal/domain/apperrors"
	"forum-api/internal/domain/entity"
	"forum-api/internal/domain/repository"
)

// courseDescriptionPrefix builds the default description for lazily
// created courses.
const courseDescriptionPrefix = "Curso de "

// CourseService resolves courses by name, creating them on first
// reference. Matching is case-insensitive everywhere.
type CourseService struct {
	Courses repository.CourseRepository
	Logger  *logrus.Logger
}

func NewCourseService(courses repository.CourseRepository, logger *logrus.Logger) *CourseService {
	return &CourseService{Courses: courses, Logger: logger}
}

// GetOrCreate looks the course up case-insensitively and creates it with a
// default description on a miss. When a concurrent caller wins the insert
// race the unique index rejects ours and the lookup is retried, so both
// callers end up with the same row.
func (s *CourseService) GetOrCreate(ctx context.Context, name string) (*entity.Course, error) {
	name = strings.TrimSpace(name)
	if err := validateCourseName(name); err != nil {
		return nil, err
	}

	existing, err := s.Courses.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	course := &entity.Course{Name: name, Description: courseDescriptionPrefix + name}
	err = s.Courses.Create(ctx, course)
	if err == nil {
		if s.Logger != nil {
			s.Logger.WithField("course", course.Name).Info("course created")
		}
		return course, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, err
	}

	// Lost the insert race; the row exists now.
	existing, err = s.Courses.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.ErrConflict
	}
	return existing, nil
}

func (s *CourseService) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.Courses.ExistsByName(ctx, name)
}

func (s *CourseService) CountCourses(ctx context.Context) (int64, error) {
	return s.Courses.Count(ctx)
}
