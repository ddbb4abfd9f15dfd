package timezone_test

import (
	"hotel/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Cleanup(func() { timezone.Load("") })

	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "empty falls back to utc", zone: "", want: "UTC"},
		{name: "unknown falls back to utc", zone: "Mars/Olympus_Mons", want: "UTC"},
		{name: "iana name", zone: "Asia/Jakarta", want: "Asia/Jakarta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timezone.Load(tt.zone).String())
			assert.Equal(t, tt.want, timezone.Location().String())
			assert.Equal(t, tt.want, timezone.Now().Location().String())
		})
	}
}

func TestFormat(t *testing.T) {
	t.Cleanup(func() { timezone.Load("") })

	checkIn := time.Date(2030, 5, 1, 20, 0, 0, 0, time.UTC)

	timezone.Load("Asia/Jakarta")
	assert.Equal(t, "2030-05-02 03:00", timezone.Format(checkIn, "2006-01-02 15:04"))

	timezone.Load("UTC")
	assert.Equal(t, "2030-05-01 20:00", timezone.Format(checkIn, "2006-01-02 15:04"))
}
