package permissions_test

import (
	"hotel/permissions"
	"hotel/shared/constant"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_PublicAndAdminEndpoints(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		path     string
		method   string
		wantSkip bool
		wantRole []string
	}{
		{name: "login is public", path: "/v1/auth/login", method: http.MethodPost, wantSkip: true},
		{name: "room list is public with mount slash", path: "/v1/rooms/", method: http.MethodGet, wantSkip: true},
		{name: "available rooms are public", path: "/v1/rooms/available", method: http.MethodGet, wantSkip: true},
		{name: "room creation is admin only", path: "/v1/rooms/", method: http.MethodPost, wantRole: []string{constant.RoleAdmin}},
		{name: "booking update is admin only", path: "/v1/bookings/{id}", method: http.MethodPatch, wantRole: []string{constant.RoleAdmin}},
		{name: "booking creation for any user", path: "/v1/bookings", method: http.MethodPost, wantRole: []string{constant.RoleAdmin, constant.RoleGuest}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, got.Skip)
			assert.ElementsMatch(t, tt.wantRole, got.Permissions)
		})
	}
}

func TestFindPermissions_Unknown(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	got := data.FindPermissions("/v1/unknown", http.MethodGet)

	assert.Equal(t, permissions.Permission{}, got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid",
			raw:  `{"endpoints":[{"method":"GET","path":"/v1/rooms/","skip":true},{"method":"post","path":"/v1/rooms","permissions":["ADMIN"]}]}`,
		},
		{
			name:    "duplicate route after normalization",
			raw:     `{"endpoints":[{"method":"GET","path":"/v1/rooms/"},{"method":"GET","path":"/v1/rooms"}]}`,
			wantErr: true,
		},
		{
			name:    "malformed",
			raw:     `{"endpoints":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Parse([]byte(tt.raw))

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, data.FindPermissions("/v1/rooms", http.MethodGet).Skip)
			assert.Equal(t, []string{constant.RoleAdmin}, data.FindPermissions("/v1/rooms/", http.MethodPost).Permissions)
		})
	}
}
