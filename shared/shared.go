package shared

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"encoding/json"
	"errors"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/timezone"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func ConvertStringToInt(value string) (int, error) {
	res, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return res, nil
}

func ConvertStringToInt64(value string) (int64, error) {
	res, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return res, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into an update map.
// Pointer fields are included whenever they are non-nil.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// Actor returns the identity written to audit columns for the caller in ctx.
func Actor(ctx context.Context) string {
	if email, ok := ctx.Value(constant.ContextKeyUserEmail).(string); ok && email != "" {
		return email
	}

	return constant.ContextGuest
}

// UserIDFromContext returns the authenticated user id placed in ctx by the auth middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	raw, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || raw == "" {
		return 0, false
	}

	id, err := ConvertStringToInt64(raw)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// IsAdmin reports whether the authenticated caller in ctx holds the admin role.
func IsAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return role == constant.RoleAdmin
}

// BuildCacheKey joins the prefix and parts with ":".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery appends a digest of the query params and filter to the prefix.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to marshal cache key query")

		return prefix
	}

	sum := sha1.Sum(raw) //nolint:gosec

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// CacheVersion returns the current generation of the caches kept under versionKey. Reads
// must take it before querying the source so a write that bumps it orphans whatever they
// save. A miss or an unreachable cache yields generation 0.
func CacheVersion(ctx context.Context, redisCache cache.RedisCache, versionKey string) string {
	var version int64

	if err := redisCache.Get(ctx, versionKey, &version); err != nil && !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", versionKey).Msg("failed to read cache version")
	}

	return "v" + strconv.FormatInt(version, 10)
}

// BumpCacheVersion starts a new generation for the caches kept under versionKey.
func BumpCacheVersion(ctx context.Context, redisCache cache.RedisCache, versionKey string) {
	if _, err := redisCache.Incr(ctx, versionKey); err != nil {
		log.Error().Err(err).Str("key", versionKey).Msg("failed to bump cache version")
	}
}

// InvalidateCaches removes every key under prefix. Errors are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
