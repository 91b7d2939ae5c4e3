package dashboard

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/straye-as/offer-tracker/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes built views per filter for a single store revision.
// Entries of older revisions are discarded as soon as a newer one is seen.
type Cache struct {
	mu       sync.Mutex
	revision uint64
	views    map[string]domain.DashboardView
	group    singleflight.Group
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{views: make(map[string]domain.DashboardView)}
}

// Get returns the view for (revision, filter), calling build on a miss.
// Concurrent misses for the same key share one build. A revision older than
// the newest one seen is built but never cached.
func (c *Cache) Get(revision uint64, filter domain.DashboardFilter, build func() domain.DashboardView) domain.DashboardView {
	key := FilterKey(filter)

	c.mu.Lock()
	if revision < c.revision {
		c.mu.Unlock()
		return build()
	}
	if revision > c.revision {
		c.revision = revision
		c.views = make(map[string]domain.DashboardView)
	}
	if view, ok := c.views[key]; ok {
		c.mu.Unlock()
		return view
	}
	c.mu.Unlock()

	flightKey := strconv.FormatUint(revision, 10) + "|" + key
	result, _, _ := c.group.Do(flightKey, func() (interface{}, error) {
		view := build()
		c.mu.Lock()
		if c.revision == revision {
			c.views[key] = view
		}
		c.mu.Unlock()
		return view, nil
	})
	return result.(domain.DashboardView)
}

// Len reports the number of cached views
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.views)
}

// FilterKey renders a filter canonically. Status order does not matter.
func FilterKey(filter domain.DashboardFilter) string {
	statuses := make([]string, 0, len(filter.Statuses))
	seen := make(map[domain.OfferStatus]bool, len(filter.Statuses))
	for _, s := range filter.Statuses {
		if seen[s] {
			continue
		}
		seen[s] = true
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)

	var b strings.Builder
	b.WriteString(filter.ClientID)
	b.WriteByte('|')
	b.WriteString(strings.Join(statuses, ","))
	for _, bound := range []*time.Time{filter.CreatedFrom, filter.CreatedTo, filter.ValidFrom, filter.ValidTo} {
		b.WriteByte('|')
		if bound != nil {
			b.WriteString(bound.UTC().Format(time.RFC3339Nano))
		}
	}
	return b.String()
}
