package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/reference"
	"hotel/internal/domains/booking/repository"
	notificationDto "hotel/internal/domains/notification/model/dto"
	notificationService "hotel/internal/domains/notification/service"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepository "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	userRepository "hotel/internal/domains/user/repository"
	userService "hotel/internal/domains/user/service"
	"hotel/shared"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/stay"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	MsgRoomNotFound       = "Room not found"
	MsgRoomUnavailable    = "Room is not available to be booked"
	MsgBookingIDRequired  = "Booking Id is required"
	MsgBookingNotFound    = "Booking not found"
	MsgBookingRefNotFound = "Booking with ref=%s not found"

	SubjectConfirmation = "BOOKING CONFIRMATION"
	BodyConfirmation    = "Your booking has been successfully created.\nPlease process with the payment using the link below\n%s"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	FindByReference(ctx context.Context, reference string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	GetMyBookings(ctx context.Context) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	rooms       roomRepository.Room
	users       userRepository.User
	currentUser userService.CurrentUser
	references  reference.Generator
	notifier    notificationService.Sender
	metrics     *metrics.Metrics
	clock       clock.Clock
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	rooms roomRepository.Room,
	users userRepository.User,
	currentUser userService.CurrentUser,
	references reference.Generator,
	notifier notificationService.Sender,
	metrics *metrics.Metrics,
	clock clock.Clock,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		rooms:       rooms,
		users:       users,
		currentUser: currentUser,
		references:  references,
		notifier:    notifier,
		metrics:     metrics,
		clock:       clock,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.recordOutcome(err) }()

	user, err := s.currentUser.Current(ctx)
	if err != nil {
		return res, err
	}

	room, err := s.rooms.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("room_id", req.RoomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if !room.Exists() {
		return res, failure.NotFound(MsgRoomNotFound)
	}

	dates, err := parseStay(req)
	if err != nil {
		return res, err
	}

	if err = stay.Validate(dates.CheckIn, dates.CheckOut, clock.Today(s.clock)); err != nil {
		return res, err
	}

	available, err := s.repo.IsRoomAvailable(ctx, room.ID, dates.CheckIn, dates.CheckOut)
	if err != nil {
		log.Error().Err(err).Int64("room_id", room.ID).Msg("failed to check room availability")

		return res, fmt.Errorf("failed to check room availability: %w", err)
	}

	if !available {
		return res, failure.InvalidState(MsgRoomUnavailable)
	}

	total := room.PricePerNight.Mul(decimal.NewFromInt(stay.Nights(dates.CheckIn, dates.CheckOut)))

	ref, err := s.references.Generate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate booking reference")

		return res, fmt.Errorf("failed to generate booking reference: %w", err)
	}

	booking := dto.ToModel(user.ID, room.ID, dates, total, ref, user.Email)

	booking.ID, err = s.repo.Reserve(ctx, booking)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomUnavailable):
			return res, failure.InvalidState(MsgRoomUnavailable)
		case errors.Is(err, repository.ErrRoomNotFound):
			return res, failure.NotFound(MsgRoomNotFound)
		}

		log.Error().Err(err).Str("reference", ref).Msg("failed to reserve booking")

		return res, fmt.Errorf("failed to reserve booking: %w", err)
	}

	paymentLink := s.paymentLink(ref, total)
	log.Info().Str("reference", ref).Str("payment_link", paymentLink).Msg("booking payment link")

	s.notifier.Send(ctx, notificationDto.NotificationRequest{
		Recipient:        user.Email,
		Subject:          SubjectConfirmation,
		Body:             fmt.Sprintf(BodyConfirmation, paymentLink),
		BookingReference: ref,
	})

	res.FromModel(booking)
	res.WithDetails(userView(user), roomView(room))

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, dto.ListParams(params), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) FindByReference(ctx context.Context, ref string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindByReference")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, repository.ByReference(ref))
	if err != nil {
		log.Error().Err(err).Str("reference", ref).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	// other guests get the same answer as for an unknown code
	if !booking.Exists() || !visibleTo(ctx, booking) {
		return res, failure.NotFound(fmt.Sprintf(MsgBookingRefNotFound, ref))
	}

	user, err := s.users.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("user_id", booking.UserID).Msg("failed to get booking user")

		return res, fmt.Errorf("failed to get booking user: %w", err)
	}

	room, err := s.rooms.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Int64("room_id", booking.RoomID).Msg("failed to get booking room")

		return res, fmt.Errorf("failed to get booking room: %w", err)
	}

	res.FromModel(booking)
	res.WithDetails(userView(user), roomView(room))

	return res, nil
}

// visibleTo reports whether the caller in ctx may read booking: admins read any, guests only their own.
func visibleTo(ctx context.Context, booking model.Booking) bool {
	if shared.IsAdmin(ctx) {
		return true
	}

	userID, ok := shared.UserIDFromContext(ctx)

	return ok && userID == booking.UserID
}

// Update applies the statuses present in req and returns the booking as stored afterwards.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.ID == 0 {
		return res, failure.NotFound(MsgBookingIDRequired)
	}

	filter := shared.FilterByID(req.ID, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("booking_id", req.ID).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !booking.Exists() {
		return res, failure.NotFound(MsgBookingNotFound)
	}

	if req.HasChanges() {
		if err = s.repo.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), filter); err != nil {
			log.Error().Err(err).Int64("booking_id", req.ID).Msg("failed to update booking")

			return res, fmt.Errorf("failed to update booking: %w", err)
		}

		booking, err = s.repo.Get(ctx, filter)
		if err != nil {
			log.Error().Err(err).Int64("booking_id", req.ID).Msg("failed to reload booking")

			return res, fmt.Errorf("failed to reload booking: %w", err)
		}
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetMyBookings(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.currentUser.Current(ctx)
	if err != nil {
		return res, err
	}

	bookings, err := s.repo.GetAll(ctx, dto.ListParams(gDto.QueryParams{}), repository.ByUser(user.ID))
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("failed to get user bookings")

		return res, fmt.Errorf("failed to get user bookings: %w", err)
	}

	rooms, err := s.roomsOf(ctx, bookings)
	if err != nil {
		return res, err
	}

	owner := userView(user)
	res = dto.FromModels(bookings)

	for i := range res {
		var room *roomDto.RoomResponse
		if found, ok := rooms[bookings[i].RoomID]; ok {
			room = roomView(found)
		}

		res[i].WithDetails(owner, room)
	}

	return res, nil
}

func (s *serviceImpl) roomsOf(ctx context.Context, bookings []model.Booking) (map[int64]roomModel.Room, error) {
	res := make(map[int64]roomModel.Room, len(bookings))
	if len(bookings) == 0 {
		return res, nil
	}

	seen := make(map[int64]struct{}, len(bookings))
	ids := make([]int64, 0, len(bookings))

	for _, booking := range bookings {
		if _, ok := seen[booking.RoomID]; !ok {
			seen[booking.RoomID] = struct{}{}
			ids = append(ids, booking.RoomID)
		}
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldID, Operator: gDto.FilterOperatorIn, Value: ids, Table: roomModel.TableName},
		},
	}

	rooms, err := s.rooms.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked rooms")

		return nil, fmt.Errorf("failed to get booked rooms: %w", err)
	}

	for _, room := range rooms {
		res[room.ID] = room
	}

	return res, nil
}

func (s *serviceImpl) paymentLink(ref string, total decimal.Decimal) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.App.PaymentBaseURL, "/"), ref, total.StringFixed(2))
}

// recordOutcome counts client errors as rejections and everything else non-nil as failures.
func (s *serviceImpl) recordOutcome(err error) {
	switch {
	case err == nil:
		s.metrics.RecordBooking(metrics.OutcomeSuccess)
	case failure.GetCode(err) < http.StatusInternalServerError:
		s.metrics.RecordBooking(metrics.OutcomeRejected)
	default:
		s.metrics.RecordBooking(metrics.OutcomeFailure)
	}
}

func parseStay(req dto.CreateBookingRequest) (dto.Stay, error) {
	checkIn, err := stay.Parse(req.CheckInDate)
	if err != nil {
		return dto.Stay{}, failure.BadRequest(err)
	}

	checkOut, err := stay.Parse(req.CheckOutDate)
	if err != nil {
		return dto.Stay{}, failure.BadRequest(err)
	}

	return dto.Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

func userView(user userModel.User) *userDto.UserResponse {
	var res userDto.UserResponse
	res.FromModel(user)

	return &res
}

func roomView(room roomModel.Room) *roomDto.RoomResponse {
	var res roomDto.RoomResponse
	res.FromModel(room)

	return &res
}
