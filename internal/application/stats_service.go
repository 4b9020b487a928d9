package application

import (
	"context"

	"forum-api/internal/domain/repository"
)

// GlobalStats is a point-in-time snapshot of forum totals.
type GlobalStats struct {
	TotalTopics  int64
	TotalUsers   int64
	TotalCourses int64
}

// CourseStats is the topic count for a single course.
type CourseStats struct {
	CourseName  string
	TotalTopics int64
}

// StatsService composes read-only counts from the other repositories.
// Nothing is cached; every call reflects the store at call time.
type StatsService struct {
	Topics  repository.TopicRepository
	Users   repository.UserRepository
	Courses repository.CourseRepository
}

func NewStatsService(topics repository.TopicRepository, users repository.UserRepository, courses repository.CourseRepository) *StatsService {
	return &StatsService{Topics: topics, Users: users, Courses: courses}
}

func (s *StatsService) Global(ctx context.Context) (*GlobalStats, error) {
	topics, err := s.Topics.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.Courses.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &GlobalStats{TotalTopics: topics, TotalUsers: users, TotalCourses: courses}, nil
}

// Course counts topics for the named course, case-insensitively. A course
// nobody created yet simply counts zero.
func (s *StatsService) Course(ctx context.Context, courseName string) (*CourseStats, error) {
	n, err := s.Topics.CountByCourseName(ctx, courseName)
	if err != nil {
		return nil, err
	}
	return &CourseStats{CourseName: courseName, TotalTopics: n}, nil
}
