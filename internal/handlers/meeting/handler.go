package meeting

import (
	"net/http"

	"meetspace/infras/otel"
	"meetspace/internal/domains/meeting/model/dto"
	"meetspace/internal/domains/meeting/service"
	"meetspace/permissions"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/validator"
	"meetspace/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Meeting
	otel    otel.Otel
}

func New(service service.Meeting, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/meetings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMeetings)
		routerGroup.Post("/", handler.CreateMeeting)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/my-meetings", handler.GetMyMeetings)
		routerGroup.Get("/day/{date}", handler.GetMeetingsByDate)
		routerGroup.Get("/{id}", handler.GetMeetingByID)
		routerGroup.Put("/{id}", handler.UpdateMeeting)
		routerGroup.Put("/{id}/status", handler.UpdateMeetingStatus)
		routerGroup.Delete("/{id}", handler.DeleteMeeting)
	})

	router.Get("/meetings-active", handler.GetActiveMeetings)
}

// CreateMeeting books a room.
// @Summary Book a meeting
// @Description Book a room for a time range on one day. Overlapping confirmed meetings in the same room are rejected.
// @Tags Meeting
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingRequest true "Meeting"
// @Success 201 {object} response.Data[dto.MeetingResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meetings [post]
// @Security BearerAuth
func (handler *Handler) CreateMeeting(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMeeting")
	defer scope.End()

	req := dto.CreateMeetingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, permissions.IdentityFromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create meeting")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Meeting created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMeetings lists every meeting.
// @Summary Get all meetings
// @Tags Meeting
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room"
// @Param user_id query string false "Filter by organizer"
// @Param date query string false "Filter by day (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetMeetingsResponse]
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meetings [get]
// @Security BearerAuth
func (handler *Handler) GetMeetings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMeetings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	req := dto.GetMeetingsRequest{}
	req.FromRequest(request)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meetings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMyMeetings lists the caller's meetings.
// @Summary Get my meetings
// @Tags Meeting
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetMeetingsResponse]
// @Failure 401 {object} response.Error
// @Router /v1/meetings/my-meetings [get]
// @Security BearerAuth
func (handler *Handler) GetMyMeetings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyMeetings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetMine(ctx, permissions.IdentityFromContext(ctx), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own meetings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMeetingsByDate lists the meetings of one day.
// @Summary Get meetings of a day
// @Tags Meeting
// @Produce json
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetMeetingsResponse]
// @Failure 422 {object} response.Error
// @Router /v1/meetings/day/{date} [get]
// @Security BearerAuth
func (handler *Handler) GetMeetingsByDate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMeetingsByDate")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetByDate(ctx, chi.URLParam(request, constant.RequestParamDate), queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meetings by date")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetActiveMeetings lists upcoming confirmed meetings.
// @Summary Get active meetings
// @Description Confirmed meetings from today onwards in chronological order.
// @Tags Meeting
// @Produce json
// @Success 200 {object} response.Data[[]dto.MeetingResponse]
// @Router /v1/meetings-active [get]
// @Security BearerAuth
func (handler *Handler) GetActiveMeetings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveMeetings")
	defer scope.End()

	res, err := handler.service.GetActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active meetings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CheckAvailability tells whether a slot is free.
// @Summary Check room availability
// @Tags Meeting
// @Produce json
// @Param room_id query string true "Room"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param start_time query string true "Start (HH:MM)"
// @Param end_time query string true "End (HH:MM)"
// @Param exclude_id query string false "Meeting to ignore, used when rescheduling"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 422 {object} response.Error
// @Router /v1/meetings/availability [get]
// @Security BearerAuth
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{}
	req.FromRequest(request)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMeetingByID returns one meeting.
// @Summary Get meeting by ID
// @Tags Meeting
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} response.Data[dto.MeetingResponse]
// @Failure 404 {object} response.Error
// @Router /v1/meetings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMeetingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMeetingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meeting")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateMeeting edits or reschedules a meeting.
// @Summary Update meeting
// @Tags Meeting
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.UpdateMeetingRequest true "Changes"
// @Success 200 {object} response.Data[dto.MeetingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/meetings/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateMeeting(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMeeting")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateMeetingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, permissions.IdentityFromContext(ctx), id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update meeting")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateMeetingStatus confirms or cancels a meeting.
// @Summary Update meeting status
// @Tags Meeting
// @Accept json
// @Produce json
// @Param id path string true "Meeting ID"
// @Param request body dto.UpdateStatusRequest true "Status"
// @Success 200 {object} response.Data[dto.MeetingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/meetings/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) UpdateMeetingStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMeetingStatus")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, permissions.IdentityFromContext(ctx), id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update meeting status")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteMeeting removes a meeting.
// @Summary Delete meeting
// @Tags Meeting
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/meetings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMeeting(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMeeting")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, permissions.IdentityFromContext(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete meeting")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Meeting deleted successfully")
}
