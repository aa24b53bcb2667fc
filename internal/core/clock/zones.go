package clock

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrUnknownTimezone is returned when an IANA zone name cannot be resolved
var ErrUnknownTimezone = errors.New("unknown timezone")

const defaultZoneCacheSize = 512

var (
	zonesOnce sync.Once
	zones     *lru.Cache[string, *time.Location]

	// loadZone is a seam for tests
	loadZone = time.LoadLocation
)

func zoneCache() *lru.Cache[string, *time.Location] {
	zonesOnce.Do(func() {
		c, err := lru.New[string, *time.Location](defaultZoneCacheSize)
		if err != nil {
			panic(err) // only fails on a non positive size
		}
		zones = c
	})
	return zones
}

// LoadLocation resolves an IANA zone name through a process wide LRU cache
// locations are immutable so cached values are shared freely across goroutines
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownTimezone)
	}
	c := zoneCache()
	if loc, ok := c.Get(name); ok {
		return loc, nil
	}
	loc, err := loadZone(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	c.Add(name, loc)
	return loc, nil
}

// MustLocation is LoadLocation for literals in tests and defaults
func MustLocation(name string) *time.Location {
	loc, err := LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// CachedZones reports how many zones are currently cached
func CachedZones() int { return zoneCache().Len() }
