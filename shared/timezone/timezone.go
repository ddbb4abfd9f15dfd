// Package timezone pins timestamps to the hotel's configured zone (APP_TIMEZONE, an IANA
// name such as "Asia/Jakarta"). Unknown or empty names fall back to UTC.
package timezone

import (
	"hotel/config"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var location atomic.Pointer[time.Location]

func init() {
	Load(config.Get().App.Timezone)
}

// Load replaces the application zone and returns the zone in effect.
func Load(name string) *time.Location {
	loc := time.UTC

	if name != "" {
		loaded, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")
		} else {
			loc = loaded
		}
	}

	location.Store(loc)

	return loc
}

func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application zone.
func Now() time.Time {
	return time.Now().In(Location())
}

func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
