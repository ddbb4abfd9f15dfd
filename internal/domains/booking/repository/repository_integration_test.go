//go:build integration

package repository_test

import (
	"context"
	"hotel/config"
	"hotel/helper"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	gRepo "hotel/shared/repository"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "hotel"
	testPassword = "hotelpass"
	testDatabase = "hotel"
)

func startPostgres(t *testing.T) *postgres.Connection {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       testDatabase,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.DB.Postgres.MaxRetry = 5
	cfg.DB.Postgres.RetryWaitTime = 1
	cfg.DB.Postgres.MaxOpenConns = 5
	cfg.DB.Postgres.MaxIdleConns = 5

	cfg.DB.Postgres.Write.Host = host
	cfg.DB.Postgres.Write.Port = port.Port()
	cfg.DB.Postgres.Write.Username = testUser
	cfg.DB.Postgres.Write.Password = testPassword
	cfg.DB.Postgres.Write.Name = testDatabase
	cfg.DB.Postgres.Write.SSLMode = "disable"
	cfg.DB.Postgres.Read = cfg.DB.Postgres.Write

	require.NoError(t, helper.Migrate("file://../../../../migrations/postgres", helper.DSN(cfg), helper.ActionUp))

	conn := postgres.New(cfg)
	t.Cleanup(conn.Close)

	return conn
}

func seed(t *testing.T, conn *postgres.Connection) (userID, roomID int64) {
	t.Helper()

	ctx := context.Background()

	require.NoError(t, conn.Write.GetContext(ctx, &userID,
		`INSERT INTO users (email, password, role) VALUES ('guest@hotel.test', 'x', 'GUEST') RETURNING id`))
	require.NoError(t, conn.Write.GetContext(ctx, &roomID,
		`INSERT INTO rooms (room_number, room_type, price_per_night, capacity) VALUES (101, 'DOUBLE', 100, 2) RETURNING id`))

	return userID, roomID
}

func day(d int) time.Time {
	return time.Date(2031, time.June, d, 0, 0, 0, 0, time.UTC)
}

func booking(userID, roomID int64, ref string, in, out int) model.Booking {
	now := time.Now().UTC()

	return model.Booking{
		UserID:           userID,
		RoomID:           roomID,
		CheckInDate:      day(in),
		CheckOutDate:     day(out),
		TotalPrice:       decimal.NewFromInt(int64(out-in) * 100),
		BookingReference: ref,
		PaymentStatus:    model.PaymentPending,
		BookingStatus:    model.StatusBooked,
		Metadata:         gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: "test", ModifiedBy: "test"},
	}
}

func TestBookingRepository_Integration(t *testing.T) {
	conn := startPostgres(t)
	userID, roomID := seed(t, conn)

	repo := repository.New(conn, mocks.NewOtel())
	ctx := context.Background()

	id, err := repo.Reserve(ctx, booking(userID, roomID, "REF0000001", 10, 13))
	require.NoError(t, err)
	assert.NotZero(t, id)

	t.Run("overlap is rejected by the reserve", func(t *testing.T) {
		_, err := repo.Reserve(ctx, booking(userID, roomID, "REF0000002", 12, 15))
		assert.ErrorIs(t, err, repository.ErrRoomUnavailable)
	})

	t.Run("back to back stays are allowed", func(t *testing.T) {
		available, err := repo.IsRoomAvailable(ctx, roomID, day(13), day(15))
		require.NoError(t, err)
		assert.True(t, available)

		_, err = repo.Reserve(ctx, booking(userID, roomID, "REF0000003", 13, 15))
		assert.NoError(t, err)
	})

	t.Run("overlap is reported by the pre-check", func(t *testing.T) {
		available, err := repo.IsRoomAvailable(ctx, roomID, day(9), day(11))
		require.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("cancelled bookings free the room", func(t *testing.T) {
		err := repo.Update(ctx, map[string]any{model.FieldBookingStatus: model.StatusCancelled}, repository.ByReference("REF0000001"))
		require.NoError(t, err)

		available, err := repo.IsRoomAvailable(ctx, roomID, day(10), day(13))
		require.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := repo.Reserve(ctx, booking(userID, roomID+100, "REF0000004", 20, 22))
		assert.ErrorIs(t, err, repository.ErrRoomNotFound)
	})

	t.Run("lookup by reference and user", func(t *testing.T) {
		found, err := repo.Get(ctx, repository.ByReference("REF0000003"))
		require.NoError(t, err)
		assert.Equal(t, "2031-06-13", found.CheckInDate.Format(time.DateOnly))
		assert.True(t, found.TotalPrice.Equal(decimal.NewFromInt(200)))

		mine, err := repo.GetAll(ctx, dtoNewestFirst(), repository.ByUser(userID))
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Greater(t, mine[0].ID, mine[1].ID)
	})

	t.Run("booked room and guest cannot be deleted", func(t *testing.T) {
		rooms := roomRepo.New(conn, mocks.NewOtel())
		err := rooms.Delete(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		assert.ErrorIs(t, err, gRepo.ErrReferenced)

		users := userRepo.New(conn, mocks.NewOtel())
		err = users.Delete(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
		assert.ErrorIs(t, err, gRepo.ErrReferenced)

		found, err := repo.Get(ctx, repository.ByReference("REF0000003"))
		require.NoError(t, err)
		assert.Equal(t, roomID, found.RoomID)
	})
}

func dtoNewestFirst() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirDesc}
}
