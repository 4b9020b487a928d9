package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"forum-api/internal/application"
	"forum-api/internal/infrastructure/postgres"
	handlers "forum-api/internal/interface/http"
	"forum-api/internal/router/modules"
	"forum-api/pkg/helpers"
)

// Deps carries the shared infrastructure every module is built from.
type Deps struct {
	Pool   *pgxpool.Pool
	Logger *logrus.Logger
	JWT    *helpers.JWTManager
	Hasher *helpers.Hasher
}

// InitModules wires repositories, services and handlers, and registers all
// feature modules. Called once during startup.
func InitModules(r *Registry, d Deps) {
	users := postgres.NewUserRepository(d.Pool)
	courses := postgres.NewCourseRepository(d.Pool)
	topics := postgres.NewTopicRepository(d.Pool)

	authSvc := application.NewAuthService(users, d.Hasher, d.JWT, d.Logger)
	courseSvc := application.NewCourseService(courses, d.Logger)
	topicSvc := application.NewTopicService(topics, users, courseSvc, d.Logger)
	statsSvc := application.NewStatsService(topics, users, courses)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, d.Logger)))
	r.Add(modules.NewTopicModule(handlers.NewTopicHandler(topicSvc, d.Logger), d.JWT))
	r.Add(modules.NewStatsModule(handlers.NewStatsHandler(statsSvc)))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(d.Pool)))
}
