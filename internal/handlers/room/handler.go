package room

import (
	"context"
	"net/http"

	"meetspace/infras/otel"
	meetingDto "meetspace/internal/domains/meeting/model/dto"
	meetingService "meetspace/internal/domains/meeting/service"
	"meetspace/internal/domains/room/model/dto"
	"meetspace/internal/domains/room/service"
	"meetspace/permissions"
	"meetspace/shared/constant"
	gDto "meetspace/shared/dto"
	"meetspace/shared/failure"
	"meetspace/shared/validator"
	"meetspace/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formFieldImage = "image"

type Handler struct {
	service  service.Room
	meetings meetingService.Meeting
	otel     otel.Otel
}

func New(service service.Room, meetings meetingService.Meeting, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		meetings: meetings,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/meeting-rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/occupancies", handler.GetOccupancySummary)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Put("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
		routerGroup.Put("/{id}/image", handler.UpdateRoomImage)
		routerGroup.Get("/{roomId}/occupancies/day/{date}", handler.GetRoomOccupancy)
	})
}

// attachImage picks the optional image part of a multipart request. The caller closes the file.
func attachImage(request *http.Request) (*dto.UpdateRoomRequest, bool) {
	file, header, err := request.FormFile(formFieldImage)
	if err != nil {
		return &dto.UpdateRoomRequest{}, false
	}

	return &dto.UpdateRoomRequest{Image: header, ImageFile: file}, true
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room with the provided details.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Room name"
// @Param location formData string false "Room location"
// @Param capacity formData integer false "Room capacity"
// @Param resources formData []string false "Equipment available in the room"
// @Param description formData string false "Room description"
// @Param active formData boolean false "Room active status"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateRoomRequest{}
	req.FromForm(request)

	if image, ok := attachImage(request); ok {
		req.Image = image.Image
		req.ImageFile = image.ImageFile

		defer image.ImageFile.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, permissions.IdentityFromContext(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRooms retrieves all room items based on query parameters.
// @Summary Get all rooms
// @Description Retrieve all rooms with optional filtering and pagination.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param location query string false "Filter by location"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	req := dto.GetRoomsRequest{}
	req.FromRequest(request)

	rooms, err := handler.service.GetAll(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Description Fields left out of the form keep their current value.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param name formData string false "Room name"
// @Param location formData string false "Room location"
// @Param capacity formData integer false "Room capacity"
// @Param resources formData []string false "Equipment available in the room"
// @Param description formData string false "Room description"
// @Param active formData boolean false "Room active status"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.UpdateRoomRequest{}
	req.FromForm(request)

	if image, ok := attachImage(request); ok {
		req.Image = image.Image
		req.ImageFile = image.ImageFile

		defer image.ImageFile.Close()
	}

	handler.update(ctx, writer, scope, id, req)
}

// UpdateRoomImage replaces only the picture of a room.
// @Summary Replace room image
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param image formData file true "Room image"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/meeting-rooms/{id}/image [put]
// @Security BearerAuth
func (handler *Handler) UpdateRoomImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomImage")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req, ok := attachImage(request)
	if !ok {
		response.WithError(writer, failure.Validation("image is required"))

		return
	}

	defer req.ImageFile.Close()

	handler.update(ctx, writer, scope, id, *req)
}

func (handler *Handler) update(ctx context.Context, writer http.ResponseWriter, scope otel.Scope, id string, req dto.UpdateRoomRequest) {
	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Update(ctx, permissions.IdentityFromContext(ctx), id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room updated successfully")

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Description Rooms that still hold meetings cannot be deleted. Deactivate them instead.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meeting-rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, permissions.IdentityFromContext(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room deleted successfully")
}

// GetRoomOccupancy lists the occupied slots of a room on one day.
// @Summary Room occupancy for a day
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[meetingDto.RoomOccupancyResponse]
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/meeting-rooms/{roomId}/occupancies/day/{date} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomOccupancy(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomOccupancy")
	defer scope.End()

	roomID := chi.URLParam(request, constant.RequestParamRoomID)

	if err := validator.ValidateVar(roomID, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	res, err := handler.meetings.RoomOccupancy(ctx, roomID, chi.URLParam(request, constant.RequestParamDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room occupancy")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetOccupancySummary reports booked hours per room for one day.
// @Summary Occupancy of all rooms
// @Description Defaults to today when no date is given.
// @Tags Room
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[meetingDto.OccupancySummaryResponse]
// @Failure 422 {object} response.Error
// @Router /v1/meeting-rooms/occupancies [get]
// @Security BearerAuth
func (handler *Handler) GetOccupancySummary(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupancySummary")
	defer scope.End()

	var (
		res meetingDto.OccupancySummaryResponse
		err error
	)

	res, err = handler.meetings.OccupancySummary(ctx, request.URL.Query().Get(constant.RequestParamDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupancy summary")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
