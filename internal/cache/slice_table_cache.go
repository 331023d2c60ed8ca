package cache

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
)

const defaultTableTTL = 5 * time.Minute

// Table is an area's slices as read at a given table version.
type Table struct {
	Version int64               `json:"version"`
	Slices  []slicedomain.Slice `json:"slices"`
}

// SliceTableCache stores the raw slices of an area for the rate resolver.
// Readers must compare Version with the stored table version before use;
// Invalidate only drops entries early.
type SliceTableCache interface {
	Get(ctx context.Context, areaID int64) (Table, bool)
	Set(ctx context.Context, areaID int64, table Table)
	Invalidate(ctx context.Context, areaID int64)
}

type memoryCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewMemory returns an in-process cache.
func NewMemory(ttl time.Duration) SliceTableCache {
	if ttl <= 0 {
		ttl = defaultTableTTL
	}
	return &memoryCache{
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (c *memoryCache) Get(_ context.Context, areaID int64) (Table, bool) {
	value, ok := c.store.Get(tableKey(areaID))
	if !ok {
		return Table{}, false
	}
	table, ok := value.(Table)
	if !ok {
		return Table{}, false
	}
	return Table{Version: table.Version, Slices: cloneSlices(table.Slices)}, true
}

func (c *memoryCache) Set(_ context.Context, areaID int64, table Table) {
	c.store.Set(tableKey(areaID), Table{Version: table.Version, Slices: cloneSlices(table.Slices)}, c.ttl)
}

func (c *memoryCache) Invalidate(_ context.Context, areaID int64) {
	c.store.Delete(tableKey(areaID))
}

type noopCache struct{}

// NewNoop disables caching; every lookup hits the repository.
func NewNoop() SliceTableCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, int64) (Table, bool) { return Table{}, false }
func (noopCache) Set(context.Context, int64, Table)        {}
func (noopCache) Invalidate(context.Context, int64)        {}

func tableKey(areaID int64) string {
	return "customdelivery:slices:area:" + strconv.FormatInt(areaID, 10)
}

func cloneSlices(in []slicedomain.Slice) []slicedomain.Slice {
	if in == nil {
		return nil
	}
	out := make([]slicedomain.Slice, len(in))
	copy(out, in)
	return out
}
