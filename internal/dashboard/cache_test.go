package dashboard_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/straye-as/offer-tracker/internal/dashboard"
	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCache_MemoizesPerRevisionAndFilter(t *testing.T) {
	cache := dashboard.NewCache()
	var builds int
	build := func() domain.DashboardView {
		builds++
		return domain.DashboardView{Totals: domain.DashboardTotals{Count: builds}}
	}

	first := cache.Get(1, domain.DefaultDashboardFilter(), build)
	second := cache.Get(1, domain.DefaultDashboardFilter(), build)
	assert.Equal(t, 1, builds)
	assert.Equal(t, first, second)

	cache.Get(1, domain.DashboardFilter{ClientID: "c1"}, build)
	assert.Equal(t, 2, builds)
	assert.Equal(t, 2, cache.Len())

	cache.Get(2, domain.DefaultDashboardFilter(), build)
	assert.Equal(t, 3, builds)
	assert.Equal(t, 1, cache.Len(), "older revisions are dropped")
}

func TestCache_StaleRevisionKeepsNewerViews(t *testing.T) {
	cache := dashboard.NewCache()
	var builds int
	build := func() domain.DashboardView {
		builds++
		return domain.DashboardView{Totals: domain.DashboardTotals{Count: builds}}
	}

	current := cache.Get(2, domain.DefaultDashboardFilter(), build)
	assert.Equal(t, 1, builds)

	stale := cache.Get(1, domain.DefaultDashboardFilter(), build)
	assert.Equal(t, 2, builds, "stale revision is built")
	assert.NotEqual(t, current, stale)
	assert.Equal(t, 1, cache.Len(), "stale revision is not cached")

	again := cache.Get(2, domain.DefaultDashboardFilter(), build)
	assert.Equal(t, 2, builds, "newer view survives a stale request")
	assert.Equal(t, current, again)
}

func TestCache_ConcurrentMissesBuildOnce(t *testing.T) {
	cache := dashboard.NewCache()
	var builds atomic.Int32
	release := make(chan struct{})
	build := func() domain.DashboardView {
		builds.Add(1)
		<-release
		return domain.DashboardView{}
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Get(1, domain.DefaultDashboardFilter(), build)
		}()
	}
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, builds.Load(), int32(8))
	assert.Equal(t, 1, cache.Len())
}

func TestFilterKey(t *testing.T) {
	a := domain.DashboardFilter{Statuses: []domain.OfferStatus{domain.OfferStatusWon, domain.OfferStatusDraft}}
	b := domain.DashboardFilter{Statuses: []domain.OfferStatus{domain.OfferStatusDraft, domain.OfferStatusWon, domain.OfferStatusWon}}
	assert.Equal(t, dashboard.FilterKey(a), dashboard.FilterKey(b))

	empty := domain.DashboardFilter{Statuses: []domain.OfferStatus{}}
	assert.NotEqual(t, dashboard.FilterKey(empty), dashboard.FilterKey(domain.DefaultDashboardFilter()))

	bounded := domain.DefaultDashboardFilter()
	bounded.CreatedFrom = at("2025-01-01T00:00:00Z")
	assert.NotEqual(t, dashboard.FilterKey(bounded), dashboard.FilterKey(domain.DefaultDashboardFilter()))
}
