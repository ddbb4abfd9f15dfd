package s3

import (
	"hotel/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObject_Key(t *testing.T) {
	obj := Object{Directory: "rooms", FileName: "a.png"}

	assert.Equal(t, "rooms/a.png", obj.Key())
}

func TestS3_ObjectKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.hotel.test/"

	svc := &s3Impl{config: cfg}

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "own bucket", url: "https://cdn.hotel.test/rooms/a.png", want: "rooms/a.png"},
		{name: "foreign url", url: "https://elsewhere.test/rooms/a.png", wantErr: true},
		{name: "domain only", url: "https://cdn.hotel.test/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ObjectKeyFromURL(tt.url)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownObjectURL)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "https://cdn.hotel.test/rooms/b.png", svc.publicURL("rooms/b.png"))
}
