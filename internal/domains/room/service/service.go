package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strconv"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/clock"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/stay"
	"hotel/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"

	// cacheVersionRoom stamps every room cache key. It must not match the prefixes above.
	cacheVersionRoom = "room:version"
)

const (
	MsgRoomAdded       = "Room successfully added."
	MsgRoomNotExist    = "Room does not exist"
	MsgRoomNotFound    = "Room with id=%d not found"
	MsgRoomNumberTaken = "Room number %d already exists"
	MsgInvalidPrice    = "price_per_night must be greater than zero"
	MsgEmptyUpdate     = "update request cannot be empty"
	MsgRoomHasBookings = "Room has bookings and cannot be deleted"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	Delete(ctx context.Context, id int64) error
	GetAvailable(ctx context.Context, req dto.AvailableRoomsRequest) ([]dto.RoomResponse, error)
	Search(ctx context.Context, input string) ([]dto.RoomResponse, error)
	GetRoomTypes(ctx context.Context) []string
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
	clock clock.Clock
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3, clock clock.Clock) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
		clock: clock,
	}
}

// Create stores a room. A failed image upload is logged and the room is stored without an image.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.PricePerNight.IsPositive() {
		return res, failure.BadRequestFromString(MsgInvalidPrice)
	}

	if req.Image != nil {
		if err = checkImage(req.Image); err != nil {
			return res, err
		}
	}

	taken, err := s.repo.Exist(ctx, shared.FilterByID(req.RoomNumber, model.FieldRoomNumber, model.TableName))
	if err != nil {
		log.Error().Err(err).Int("room_number", req.RoomNumber).Msg("failed to check room number")

		return res, fmt.Errorf("failed to check room number: %w", err)
	}

	if taken {
		return res, failure.Conflict(fmt.Sprintf(MsgRoomNumberTaken, req.RoomNumber))
	}

	var imageURL *string

	if req.Image != nil {
		url, uploadErr := s.uploadImage(ctx, req.Image)
		if uploadErr != nil {
			log.Warn().Err(uploadErr).Int("room_number", req.RoomNumber).Msg("room image upload failed, storing room without image")
		} else {
			imageURL = &url
		}
	}

	room := req.ToModel(shared.Actor(ctx), imageURL)

	room.ID, err = s.repo.InsertReturning(ctx, room)
	if err != nil {
		log.Error().Err(err).Int("room_number", req.RoomNumber).Msg("failed to create room")

		if imageURL != nil {
			s.deleteImage(ctx, *imageURL)
		}

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.SortBy = model.FieldID
	req.SortDir = gDto.SortDirDesc

	version := shared.CacheVersion(ctx, s.cache, cacheVersionRoom)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllRoom, version), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.count(ctx, version, req, filter)
	if err != nil {
		return res, err
	}

	rooms, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, version string, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheCountRoom, version), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	version := shared.CacheVersion(ctx, s.cache, cacheVersionRoom)
	cacheKey := shared.BuildCacheKey(cacheGetRoom, version, strconv.FormatInt(id, 10))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !room.Exists() {
		return res, failure.NotFound(fmt.Sprintf(MsgRoomNotFound, id))
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// Update applies the present fields. Unlike Create, an image that cannot be stored fails the request.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateRoomRequest{}) {
		return res, failure.BadRequestFromString(MsgEmptyUpdate)
	}

	if req.PricePerNight != nil && !req.PricePerNight.IsPositive() {
		return res, failure.BadRequestFromString(MsgInvalidPrice)
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !room.Exists() {
		return res, failure.NotFound(MsgRoomNotExist)
	}

	if req.RoomNumber != 0 && req.RoomNumber != room.RoomNumber {
		taken, err := s.repo.Exist(ctx, shared.FilterByID(req.RoomNumber, model.FieldRoomNumber, model.TableName))
		if err != nil {
			log.Error().Err(err).Int("room_number", req.RoomNumber).Msg("failed to check room number")

			return res, fmt.Errorf("failed to check room number: %w", err)
		}

		if taken {
			return res, failure.Conflict(fmt.Sprintf(MsgRoomNumberTaken, req.RoomNumber))
		}
	}

	if req.Image != nil {
		if err = checkImage(req.Image); err != nil {
			return res, err
		}

		url, err := s.uploadImage(ctx, req.Image)
		if err != nil {
			log.Error().Err(err).Int64("room_id", id).Msg("failed to upload room image")

			return res, failure.BadRequest(err)
		}

		req.ImageURL = url
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), filter); err != nil {
		log.Error().Err(err).Int64("room_id", id).Msg("failed to update room")

		if req.ImageURL != constant.Empty {
			s.deleteImage(ctx, req.ImageURL)
		}

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	if req.ImageURL != constant.Empty && room.ImageURL != nil {
		s.deleteImage(ctx, *room.ImageURL)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Int64("room_id", id).Msg("failed to reload room")

		return res, fmt.Errorf("failed to reload room: %w", err)
	}

	res.FromModel(updated)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !room.Exists() {
		return failure.NotFound(MsgRoomNotExist)
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if errors.Is(err, gRepo.ErrReferenced) {
			return failure.Conflict(MsgRoomHasBookings)
		}

		log.Error().Err(err).Int64("room_id", id).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	if room.ImageURL != nil {
		s.deleteImage(ctx, *room.ImageURL)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) GetAvailable(ctx context.Context, req dto.AvailableRoomsRequest) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, err := stay.Parse(req.CheckInDate)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	checkOut, err := stay.Parse(req.CheckOutDate)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if err = stay.Validate(checkIn, checkOut, clock.Today(s.clock)); err != nil {
		return res, err
	}

	rooms, err := s.repo.FindAvailable(ctx, checkIn, checkOut, req.RoomType)
	if err != nil {
		log.Error().Err(err).Str("check_in", req.CheckInDate).Str("check_out", req.CheckOutDate).Msg("failed to find available rooms")

		return res, fmt.Errorf("failed to find available rooms: %w", err)
	}

	return dto.FromModels(rooms), nil
}

// Search matches the whole description, ignoring case.
func (s *serviceImpl) Search(ctx context.Context, input string) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.repo.FindByDescription(ctx, strings.TrimSpace(input))
	if err != nil {
		log.Error().Err(err).Str("input", input).Msg("failed to search rooms")

		return res, fmt.Errorf("failed to search rooms: %w", err)
	}

	return dto.FromModels(rooms), nil
}

func (s *serviceImpl) GetRoomTypes(ctx context.Context) []string {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRoomTypes")
	defer scope.End()

	return model.Types()
}

func (s *serviceImpl) find(ctx context.Context, id int64) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("room_id", id).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// checkImage applies the upload rules of the room requests, so services called directly get them too.
func checkImage(header *multipart.FileHeader) error {
	return validator.ValidateStruct(&dto.ImageUpload{Image: header}) //nolint:wrapcheck
}

func (s *serviceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read image: %w", err)
	}

	url, err := s.s3.Upload(ctx, s3.Object{
		Directory:   model.EntityName,
		FileName:    uuid.NewString() + strings.ToLower(path.Ext(header.Filename)),
		ContentType: strings.ToLower(header.Header.Get(constant.RequestHeaderContentType)),
		Data:        data,
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, url string) {
	if err := s.s3.Delete(ctx, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to delete room image")
	}
}

// invalidate moves room caches to a new version before the write returns, so a save that
// raced the write lands under a key no later read asks for. Old versions are swept in the
// background.
func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.BumpCacheVersion(ctx, s.cache, cacheVersionRoom)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}
