package router

import (
	"meetspace/internal/handlers/auth"
	"meetspace/internal/handlers/meeting"
	"meetspace/internal/handlers/room"
	"meetspace/internal/handlers/selects"
	"meetspace/internal/handlers/user"
	"meetspace/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Meeting meeting.Handler
	Room    room.Handler
	User    user.Handler
	Selects selects.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.RateLimit())
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		routerGroup.Group(func(credentials chi.Router) {
			credentials.Use(r.App.LoginLimit())
			r.DomainHandlers.Auth.Router(credentials)
		})

		r.DomainHandlers.Meeting.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Selects.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		AuthRole:       authRole,
	}
}
