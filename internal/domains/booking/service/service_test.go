package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	notificationMocks "hotel/internal/domains/notification/mocks"
	notificationDto "hotel/internal/domains/notification/model/dto"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/stay"
)

var today = time.Date(2030, time.March, 10, 15, 0, 0, 0, time.UTC)

type deps struct {
	repo     *bookingMocks.MockBooking
	rooms    *roomMocks.MockRoom
	users    *userMocks.MockUser
	current  *userMocks.MockCurrentUser
	refs     *bookingMocks.MockGenerator
	notifier *notificationMocks.MockSender
	metrics  *metrics.Metrics
}

func newService(t *testing.T) (service.Booking, deps) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.PaymentBaseURL = "http://localhost:4200/payment/"
	cfg.App.Metrics.Namespace = "hotel"

	d := deps{
		repo:     bookingMocks.NewMockBooking(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		users:    userMocks.NewMockUser(ctrl),
		current:  userMocks.NewMockCurrentUser(ctrl),
		refs:     bookingMocks.NewMockGenerator(ctrl),
		notifier: notificationMocks.NewMockSender(ctrl),
		metrics:  metrics.New(cfg),
	}

	svc := service.New(d.repo, d.rooms, d.users, d.current, d.refs, d.notifier, d.metrics, clock.NewFixed(today), cfg, mocks.NewOtel())

	return svc, d
}

var (
	guest = userModel.User{ID: 7, Email: "guest@hotel.test", FirstName: "Ada", Role: "GUEST", Active: true}
	suite = roomModel.Room{ID: 3, RoomNumber: 301, RoomType: roomModel.TypeSuite, PricePerNight: decimal.RequireFromString("150.25")}
)

func date(day int) time.Time {
	return time.Date(2030, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestBookingService_Create(t *testing.T) {
	valid := dto.CreateBookingRequest{RoomID: suite.ID, CheckInDate: "2030-03-10", CheckOutDate: "2030-03-13"}

	tests := []struct {
		name        string
		req         dto.CreateBookingRequest
		setupMock   func(d deps)
		wantCode    int
		wantMsg     string
		wantOutcome string
	}{
		{
			name: "creates booking and notifies the guest",
			req:  valid,
			setupMock: func(d deps) {
				d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(suite, nil)
				d.repo.EXPECT().IsRoomAvailable(gomock.Any(), suite.ID, date(10), date(13)).Return(true, nil)
				d.refs.EXPECT().Generate(gomock.Any()).Return("AB12CD34EF", nil)
				d.repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b model.Booking) (int64, error) {
						assert.Equal(t, guest.ID, b.UserID)
						assert.Equal(t, model.PaymentPending, b.PaymentStatus)
						assert.Equal(t, model.StatusBooked, b.BookingStatus)
						assert.True(t, b.TotalPrice.Equal(decimal.RequireFromString("450.75")))

						return 11, nil
					})
				d.notifier.EXPECT().Send(gomock.Any(), notificationDto.NotificationRequest{
					Recipient:        guest.Email,
					Subject:          service.SubjectConfirmation,
					Body:             "Your booking has been successfully created.\nPlease process with the payment using the link below\nhttp://localhost:4200/payment/AB12CD34EF/450.75",
					BookingReference: "AB12CD34EF",
				})
			},
			wantOutcome: metrics.OutcomeSuccess,
		},
		{
			name: "unauthenticated",
			req:  valid,
			setupMock: func(d deps) {
				d.current.EXPECT().Current(gomock.Any()).Return(userModel.User{}, failure.Unauthorized("Authentication required"))
			},
			wantCode:    http.StatusUnauthorized,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "room not found",
			req:  valid,
			setupMock: func(d deps) {
				d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode:    http.StatusNotFound,
			wantMsg:     service.MsgRoomNotFound,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "check in in the past",
			req:  dto.CreateBookingRequest{RoomID: suite.ID, CheckInDate: "2030-03-09", CheckOutDate: "2030-03-11"},
			setupMock: func(d deps) {
				d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(suite, nil)
			},
			wantCode:    http.StatusUnprocessableEntity,
			wantMsg:     stay.MsgCheckInInPast,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "check out before check in",
			req:  dto.CreateBookingRequest{RoomID: suite.ID, CheckInDate: "2030-03-12", CheckOutDate: "2030-03-11"},
			setupMock: func(d deps) {
				d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(suite, nil)
			},
			wantCode:    http.StatusUnprocessableEntity,
			wantMsg:     stay.MsgCheckOutBeforeIn,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "same day stay",
			req:  dto.CreateBookingRequest{RoomID: suite.ID, CheckInDate: "2030-03-12", CheckOutDate: "2030-03-12"},
			setupMock: func(d deps) {
				d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(suite, nil)
			},
			wantCode:    http.StatusUnprocessableEntity,
			wantMsg:     stay.MsgCheckInEqualsOut,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "overlapping booking caught by the pre-check",
			req:  valid,
			setupMock: func(d deps) {
				d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(suite, nil)
				d.repo.EXPECT().IsRoomAvailable(gomock.Any(), suite.ID, gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode:    http.StatusUnprocessableEntity,
			wantMsg:     service.MsgRoomUnavailable,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "overlapping booking caught by the reserve",
			req:  valid,
			setupMock: func(d deps) {
				d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(suite, nil)
				d.repo.EXPECT().IsRoomAvailable(gomock.Any(), suite.ID, gomock.Any(), gomock.Any()).Return(true, nil)
				d.refs.EXPECT().Generate(gomock.Any()).Return("AB12CD34EF", nil)
				d.repo.EXPECT().Reserve(gomock.Any(), gomock.Any()).Return(int64(0), repository.ErrRoomUnavailable)
			},
			wantCode:    http.StatusUnprocessableEntity,
			wantMsg:     service.MsgRoomUnavailable,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "reference generation failure",
			req:  valid,
			setupMock: func(d deps) {
				d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(suite, nil)
				d.repo.EXPECT().IsRoomAvailable(gomock.Any(), suite.ID, gomock.Any(), gomock.Any()).Return(true, nil)
				d.refs.EXPECT().Generate(gomock.Any()).Return("", errors.New("db down"))
			},
			wantCode:    http.StatusInternalServerError,
			wantOutcome: metrics.OutcomeFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)
			tt.setupMock(d)

			res, err := svc.Create(context.Background(), tt.req)

			assert.InDelta(t, 1, testutil.ToFloat64(d.metrics.BookingsTotal.WithLabelValues(tt.wantOutcome)), 0)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}

				return
			}

			require.NoError(t, err)

			want := dto.BookingResponse{
				ID:               11,
				BookingReference: "AB12CD34EF",
				CheckInDate:      "2030-03-10",
				CheckOutDate:     "2030-03-13",
				PaymentStatus:    model.PaymentPending,
				BookingStatus:    model.StatusBooked,
				TotalPrice:       decimal.RequireFromString("450.75"),
			}

			opts := cmp.Options{
				cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
				cmp.FilterPath(func(p cmp.Path) bool {
					name := p.Last().String()

					return name == ".CreatedAt" || name == ".User" || name == ".Room"
				}, cmp.Ignore()),
			}
			if diff := cmp.Diff(want, res, opts); diff != "" {
				t.Errorf("booking mismatch (-want +got):\n%s", diff)
			}

			assert.Equal(t, "450.75", res.TotalPrice.StringFixed(2))
			require.NotNil(t, res.User)
			assert.Equal(t, guest.Email, res.User.Email)
			require.NotNil(t, res.Room)
			assert.Equal(t, suite.RoomNumber, res.Room.RoomNumber)
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	svc, d := newService(t)

	d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, model.FieldID, params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)
			assert.Equal(t, 2, params.Page)

			return []model.Booking{{ID: 9, CheckInDate: date(12)}, {ID: 4}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, int64(9), res.Bookings[0].ID)
	assert.Equal(t, "2030-03-12", res.Bookings[0].CheckInDate)
	assert.Nil(t, res.Bookings[0].User)
}

func caller(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestBookingService_FindByReference(t *testing.T) {
	booked := model.Booking{ID: 11, UserID: guest.ID, RoomID: suite.ID, BookingReference: "AB12CD34EF"}

	tests := []struct {
		name     string
		ctx      context.Context
		ref      string
		stored   model.Booking
		wantCode int
		wantErr  string
	}{
		{name: "owner reads own booking", ctx: caller("7", constant.RoleGuest), ref: "AB12CD34EF", stored: booked},
		{name: "admin reads any booking", ctx: caller("1", constant.RoleAdmin), ref: "AB12CD34EF", stored: booked},
		{
			name:     "other guest cannot tell it exists",
			ctx:      caller("8", constant.RoleGuest),
			ref:      "AB12CD34EF",
			stored:   booked,
			wantCode: http.StatusNotFound,
			wantErr:  "Booking with ref=AB12CD34EF not found",
		},
		{
			name:     "anonymous caller",
			ctx:      context.Background(),
			ref:      "AB12CD34EF",
			stored:   booked,
			wantCode: http.StatusNotFound,
			wantErr:  "Booking with ref=AB12CD34EF not found",
		},
		{
			name:     "unknown reference",
			ctx:      caller("1", constant.RoleAdmin),
			ref:      "ZZZZZZZZZZ",
			wantCode: http.StatusNotFound,
			wantErr:  "Booking with ref=ZZZZZZZZZZ not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)

			d.repo.EXPECT().Get(gomock.Any(), repository.ByReference(tt.ref)).Return(tt.stored, nil)

			if tt.wantErr == "" {
				d.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guest, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(suite, nil)
			}

			res, err := svc.FindByReference(tt.ctx, tt.ref)

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, res.User)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, guest.Email, res.User.Email)
			assert.Equal(t, suite.ID, res.Room.ID)
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	existing := model.Booking{ID: 11, PaymentStatus: model.PaymentPending, BookingStatus: model.StatusBooked}

	tests := []struct {
		name       string
		req        dto.UpdateBookingRequest
		setupMock  func(d deps)
		wantCode   int
		wantMsg    string
		wantStatus string
	}{
		{
			name:      "missing id",
			req:       dto.UpdateBookingRequest{BookingStatus: model.StatusCancelled},
			setupMock: func(_ deps) {},
			wantCode:  http.StatusNotFound,
			wantMsg:   service.MsgBookingIDRequired,
		},
		{
			name: "unknown booking",
			req:  dto.UpdateBookingRequest{ID: 99, BookingStatus: model.StatusCancelled},
			setupMock: func(d deps) {
				d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantMsg:  service.MsgBookingNotFound,
		},
		{
			name: "applies only present statuses and returns stored booking",
			req:  dto.UpdateBookingRequest{ID: 11, PaymentStatus: model.PaymentPaid},
			setupMock: func(d deps) {
				d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
				d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.PaymentPaid, fields[model.FieldPaymentStatus])
						assert.NotContains(t, fields, model.FieldBookingStatus)
						assert.NotContains(t, fields, model.FieldID)

						return nil
					})
				paid := existing
				paid.PaymentStatus = model.PaymentPaid
				d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(paid, nil)
			},
			wantStatus: model.PaymentPaid,
		},
		{
			name: "no statuses leaves booking untouched",
			req:  dto.UpdateBookingRequest{ID: 11},
			setupMock: func(d deps) {
				d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existing, nil)
			},
			wantStatus: model.PaymentPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, d := newService(t)
			tt.setupMock(d)

			res, err := svc.Update(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.EqualError(t, err, tt.wantMsg)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.PaymentStatus)
		})
	}
}

func TestBookingService_GetMyBookings(t *testing.T) {
	svc, d := newService(t)

	d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
	d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), repository.ByUser(guest.ID)).
		Return([]model.Booking{{ID: 12, RoomID: suite.ID}, {ID: 8, RoomID: suite.ID}, {ID: 5, RoomID: 99}}, nil)
	d.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]roomModel.Room, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "IN")
			assert.Len(t, args, 2)

			return []roomModel.Room{suite}, nil
		})

	res, err := svc.GetMyBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, suite.RoomNumber, res[0].Room.RoomNumber)
	assert.Nil(t, res[2].Room)
	assert.Equal(t, guest.Email, res[2].User.Email)
}

func TestBookingService_GetMyBookingsEmpty(t *testing.T) {
	svc, d := newService(t)

	d.current.EXPECT().Current(gomock.Any()).Return(guest, nil)
	d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := svc.GetMyBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res)
}
