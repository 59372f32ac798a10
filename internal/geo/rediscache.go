package geo

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const geoCacheKey = "businesses:geo"

// CoordinateCache stores resolved listing coordinates in a Redis GEO set so
// a listing is geocoded at most once across sessions.
type CoordinateCache struct {
	rdb *redis.Client
}

func NewCoordinateCache(rdb *redis.Client) *CoordinateCache {
	return &CoordinateCache{rdb: rdb}
}

func memberName(businessID int) string {
	return fmt.Sprintf("business:%d", businessID)
}

// Put stores a resolved coordinate. Invalid coordinates are rejected so a
// bad geocode result cannot poison the cache.
func (c *CoordinateCache) Put(ctx context.Context, businessID int, lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("coordinate cache: invalid coords lat=%.8f lon=%.8f", lat, lon)
	}
	return c.rdb.GeoAdd(ctx, geoCacheKey, &redis.GeoLocation{
		Name:      memberName(businessID),
		Longitude: lon,
		Latitude:  lat,
	}).Err()
}

// Get returns the cached coordinate for a listing, ok=false on a miss.
func (c *CoordinateCache) Get(ctx context.Context, businessID int) (lat, lon float64, ok bool, err error) {
	pos, err := c.rdb.GeoPos(ctx, geoCacheKey, memberName(businessID)).Result()
	if err != nil {
		return 0, 0, false, err
	}
	if len(pos) == 0 || pos[0] == nil {
		return 0, 0, false, nil
	}
	return pos[0].Latitude, pos[0].Longitude, true, nil
}

// Forget drops a listing from the cache, e.g. after its address changes.
func (c *CoordinateCache) Forget(ctx context.Context, businessID int) error {
	return c.rdb.ZRem(ctx, geoCacheKey, memberName(businessID)).Err()
}
