//go:build wireinject
// +build wireinject

package di

import (
	"meetspace/config"
	"meetspace/infras/jwt"
	"meetspace/infras/kafka"
	"meetspace/infras/otel"
	"meetspace/infras/postgres"
	"meetspace/infras/redis"
	"meetspace/infras/s3"
	"meetspace/permissions"
	"meetspace/shared/cache"
	"meetspace/transport/event"
	"meetspace/transport/http"
	"meetspace/transport/http/middleware"
	"meetspace/transport/http/router"

	authService "meetspace/internal/domains/auth/service"
	meetingRepository "meetspace/internal/domains/meeting/repository"
	meetingService "meetspace/internal/domains/meeting/service"
	roomRepository "meetspace/internal/domains/room/repository"
	roomService "meetspace/internal/domains/room/service"
	selectsService "meetspace/internal/domains/selects/service"
	userRepository "meetspace/internal/domains/user/repository"
	userService "meetspace/internal/domains/user/service"

	authHandler "meetspace/internal/handlers/auth"
	meetingHandler "meetspace/internal/handlers/meeting"
	roomHandler "meetspace/internal/handlers/room"
	selectsHandler "meetspace/internal/handlers/selects"
	userHandler "meetspace/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Bind(new(middleware.Revocations), new(authService.Auth)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	meetingRepository.New,
	roomRepository.New,
	userRepository.New,
)

var domains = wire.NewSet(
	repositories,
	meetingService.New,
	roomService.New,
	userService.New,
	authService.New,
	selectsService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	meetingHandler.New,
	roomHandler.New,
	userHandler.New,
	selectsHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

// InitializeConsumer builds the event consumer without the HTTP stack.
func InitializeConsumer() *event.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		kafka.New,
		event.New,
	)

	return &event.Consumer{}
}
