package dto_test

import (
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/timezone"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	timezone.Load("UTC")

	created := time.Date(2030, 5, 1, 9, 30, 0, 0, time.UTC)

	var got dto.Metadata
	got.FromModel(model.Metadata{
		CreatedAt:  created,
		ModifiedAt: created.Add(time.Hour),
		CreatedBy:  "admin@hotel.test",
		ModifiedBy: "frontdesk@hotel.test",
	})

	assert.Equal(t, "2030-05-01T09:30:00Z", got.CreatedAt)
	assert.Equal(t, "2030-05-01T10:30:00Z", got.ModifiedAt)
	assert.Equal(t, "admin@hotel.test", got.CreatedBy)
	assert.Equal(t, "frontdesk@hotel.test", got.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		want         dto.QueryParams
	}{
		{
			name:  "every parameter",
			query: "page=3&limit=25&sort_by=price_per_night&sort_dir=asc",
			want:  dto.QueryParams{Page: 3, Limit: 25, SortBy: "price_per_night", SortDir: dto.SortDirAsc},
		},
		{
			name:  "unbounded listing without defaults",
			query: "",
			want:  dto.QueryParams{},
		},
		{
			name:         "defaults fill page and limit",
			query:        "sort_by=id&sort_dir=DESC",
			withDefaults: true,
			want: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "id",
				SortDir: dto.SortDirDesc,
			},
		},
		{
			name:         "garbage is ignored",
			query:        "page=-2&limit=ten&sort_dir=sideways",
			withDefaults: true,
			want:         dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "zero limit stays unbounded",
			query: "page=2&limit=0",
			want:  dto.QueryParams{Page: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dto.QueryParams
			got.FromRequest(httptest.NewRequest("GET", "/v1/bookings?"+tt.query, nil), tt.withDefaults)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromRequest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	tests := []struct {
		params dto.QueryParams
		want   int
	}{
		{params: dto.QueryParams{Page: 1, Limit: 10}, want: 0},
		{params: dto.QueryParams{Page: 3, Limit: 10}, want: 20},
		{params: dto.QueryParams{Limit: 10}, want: 0},
		{params: dto.QueryParams{Page: 4}, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.params.Offset(), "%+v", tt.params)
	}
}
