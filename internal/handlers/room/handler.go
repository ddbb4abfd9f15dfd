package room

import (
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	formRoomNumber    = "room_number"
	formRoomType      = "room_type"
	formPricePerNight = "price_per_night"
	formCapacity      = "capacity"
	formDescription   = "description"

	queryCheckInDate  = "check_in_date"
	queryCheckOutDate = "check_out_date"
	queryRoomType     = "room_type"
	querySearchInput  = "input"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/types", handler.GetRoomTypes)
		routerGroup.Get("/available", handler.GetAvailableRooms)
		routerGroup.Get("/search", handler.SearchRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
		routerGroup.Delete("/{id}", handler.DeleteRoom)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room. The image is optional and a failed upload stores the room without one.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param room_number formData integer true "Room number"
// @Param room_type formData string true "Room type" Enums(SINGLE, DOUBLE, TRIPLE, SUITE)
// @Param price_per_night formData number true "Price per night"
// @Param capacity formData integer true "Capacity"
// @Param description formData string false "Description"
// @Param image formData file false "Room image"
// @Success 201 {object} response.MessageData[dto.RoomResponse] "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
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

	req := dto.CreateRoomRequest{
		RoomType:    request.FormValue(formRoomType),
		Description: request.FormValue(formDescription),
		Image:       formImage(request),
	}

	var err error

	if req.RoomNumber, err = formInt(request, formRoomNumber); err == nil {
		if req.Capacity, err = formInt(request, formCapacity); err == nil {
			var price *decimal.Decimal
			if price, err = formDecimal(request, formPricePerNight); err == nil && price != nil {
				req.PricePerNight = *price
			}
		}
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read room form")
		response.WithError(writer, err)

		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully by " + shared.Actor(ctx))

	response.WithMessageAndJSON(writer, http.StatusCreated, service.MsgRoomAdded, room)
}

// GetRooms retrieves all rooms, newest first.
// @Summary Get all rooms
// @Description Retrieve all rooms with optional room type filter and pagination.
// @Tags Room
// @Accept json
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit, 0 returns every room"
// @Param room_type query string false "Filter by room type"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if roomType := request.URL.Query().Get(queryRoomType); roomType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomType,
			Operator: gDto.FilterOperatorEq,
			Value:    roomType,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(writer, http.StatusOK, rooms)
}

// GetRoomTypes lists the supported room types.
// @Summary Get room types
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[[]string] "Room types"
// @Router /v1/rooms/types [get]
func (handler *Handler) GetRoomTypes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypes")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.GetRoomTypes(ctx))
}

// GetAvailableRooms lists rooms free for the whole stay.
// @Summary Get available rooms
// @Description Retrieve the rooms with no active booking overlapping [check_in_date, check_out_date).
// @Tags Room
// @Produce json
// @Param check_in_date query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out_date query string true "Check-out date (YYYY-MM-DD)"
// @Param room_type query string false "Room type"
// @Success 200 {object} response.Data[[]dto.RoomResponse] "Available rooms"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/available [get]
func (handler *Handler) GetAvailableRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	query := request.URL.Query()

	req := dto.AvailableRoomsRequest{
		CheckInDate:  query.Get(queryCheckInDate),
		CheckOutDate: query.Get(queryCheckOutDate),
		RoomType:     query.Get(queryRoomType),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	rooms, err := handler.service.GetAvailable(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available rooms")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Available rooms retrieved successfully")

	response.WithJSON(writer, http.StatusOK, rooms)
}

// SearchRooms finds rooms whose description equals the input, ignoring case.
// @Summary Search rooms
// @Tags Room
// @Produce json
// @Param input query string true "Description to match"
// @Success 200 {object} response.Data[[]dto.RoomResponse] "Matching rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/search [get]
func (handler *Handler) SearchRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchRooms")
	defer scope.End()

	input := request.URL.Query().Get(querySearchInput)
	if err := validator.ValidateVar(input, "required"); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate search input")

		response.WithError(writer, err)

		return
	}

	rooms, err := handler.service.Search(ctx, input)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, err := pathID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to get room by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(writer, http.StatusOK, room)
}

// UpdateRoom updates an existing room by its ID.
// @Summary Update a room by ID
// @Description Apply every provided field. A new image replaces the old one and a failed upload aborts the update.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Room ID"
// @Param room_number formData integer false "Room number"
// @Param room_type formData string false "Room type" Enums(SINGLE, DOUBLE, TRIPLE, SUITE)
// @Param price_per_night formData number false "Price per night"
// @Param capacity formData integer false "Capacity"
// @Param description formData string false "Description"
// @Param image formData file false "Room image"
// @Success 200 {object} response.MessageData[dto.RoomResponse] "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id, err := pathID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.UpdateRoomRequest{
		RoomType:    request.FormValue(formRoomType),
		Description: request.FormValue(formDescription),
		Image:       formImage(request),
	}

	if req.RoomNumber, err = formInt(request, formRoomNumber); err == nil {
		if req.Capacity, err = formInt(request, formCapacity); err == nil {
			req.PricePerNight, err = formDecimal(request, formPricePerNight)
		}
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read room form")
		response.WithError(writer, err)

		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to update room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room updated successfully by " + shared.Actor(ctx))

	response.WithMessageAndJSON(writer, http.StatusOK, "Room updated successfully", room)
}

// DeleteRoom deletes a room by its ID.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	id, err := pathID(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("id", id).Msg("failed to delete room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room deleted successfully by " + shared.Actor(ctx))

	response.WithMessage(writer, http.StatusOK, "Room deleted successfully")
}

func pathID(request *http.Request) (int64, error) {
	raw := chi.URLParam(request, constant.RequestParamID)

	id, err := shared.ConvertStringToInt64(raw)
	if err != nil || id <= 0 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid room id %q", raw))
	}

	return id, nil
}

// formInt returns zero for an absent field.
func formInt(request *http.Request, key string) (int, error) {
	raw := request.FormValue(key)
	if raw == "" {
		return 0, nil
	}

	value, err := shared.ConvertStringToInt(raw)
	if err != nil {
		return 0, failure.BadRequestFromString(key + " must be a whole number")
	}

	return value, nil
}

// formDecimal returns nil for an absent field.
func formDecimal(request *http.Request, key string) (*decimal.Decimal, error) {
	raw := request.FormValue(key)
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, failure.BadRequestFromString(key + " must be a decimal number")
	}

	return &value, nil
}

func formImage(request *http.Request) *multipart.FileHeader {
	if request.MultipartForm == nil {
		return nil
	}

	if files := request.MultipartForm.File[constant.FormImage]; len(files) > 0 {
		return files[0]
	}

	return nil
}
