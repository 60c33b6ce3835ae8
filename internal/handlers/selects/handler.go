package selects

import (
	"net/http"

	"meetspace/infras/otel"
	"meetspace/internal/domains/selects/model/dto"
	"meetspace/internal/domains/selects/service"
	"meetspace/shared/constant"
	"meetspace/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Selects
	otel    otel.Otel
}

func New(service service.Selects, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/selects", func(routerGroup chi.Router) {
		routerGroup.Get("/users", handler.Users)
		routerGroup.Get("/rooms", handler.Rooms)
		routerGroup.Get("/meeting-statuses", handler.MeetingStatuses)
	})
}

// Users lists user options.
// @Summary User options
// @Tags Select
// @Produce json
// @Success 200 {object} response.Data[[]dto.Option]
// @Router /v1/selects/users [get]
// @Security BearerAuth
func (handler *Handler) Users(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectUsers")
	defer scope.End()

	res, err := handler.service.Users(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user options")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Rooms lists bookable room options.
// @Summary Room options
// @Tags Select
// @Produce json
// @Success 200 {object} response.Data[[]dto.Option]
// @Router /v1/selects/rooms [get]
// @Security BearerAuth
func (handler *Handler) Rooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectRooms")
	defer scope.End()

	res, err := handler.service.Rooms(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room options")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// MeetingStatuses lists the meeting statuses.
// @Summary Meeting status options
// @Tags Select
// @Produce json
// @Success 200 {object} response.Data[[]dto.Option]
// @Router /v1/selects/meeting-statuses [get]
// @Security BearerAuth
func (handler *Handler) MeetingStatuses(writer http.ResponseWriter, _ *http.Request) {
	var res []dto.Option = handler.service.MeetingStatuses()

	response.WithJSON(writer, http.StatusOK, res)
}
