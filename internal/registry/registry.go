package registry

import (
	"sync"

	"UXTester/internal/domain"
)

// SiteRegistry is the in-memory store of monitored sites shared between the
// API handlers and the monitor tick. All access goes through the mutex; reads
// return snapshots, never live views. State lives for the process lifetime.
type SiteRegistry struct {
	mu    sync.Mutex
	sites map[string]domain.MonitoredSite
	order []string
}

// New builds an empty registry.
func New() *SiteRegistry {
	return &SiteRegistry{sites: map[string]domain.MonitoredSite{}}
}

// List returns a point-in-time snapshot of all records in registration order.
func (r *SiteRegistry) List() []domain.MonitoredSite {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.MonitoredSite, 0, len(r.order))
	for _, url := range r.order {
		out = append(out, r.sites[url])
	}
	return out
}

// Add registers a URL with pending status and no score yet. A URL that is
// already present is rejected with domain.ErrAlreadyMonitored and leaves the
// registry unchanged.
func (r *SiteRegistry) Add(url string) error {
	if url == "" {
		return domain.ErrEmptyURL
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sites[url]; ok {
		return domain.ErrAlreadyMonitored
	}

	r.sites[url] = domain.MonitoredSite{
		URL:       url,
		Score:     0,
		Status:    domain.StatusPending,
		LastCheck: domain.NeverChecked,
	}
	r.order = append(r.order, url)
	return nil
}

// Remove deletes a URL from the registry. Removing an absent URL is a no-op.
func (r *SiteRegistry) Remove(url string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sites[url]; !ok {
		return
	}

	delete(r.sites, url)
	for i, u := range r.order {
		if u == url {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Update writes back a check result for a URL. It reports false and changes
// nothing when the record was removed since the caller's snapshot, so a site
// removed mid-tick is never resurrected.
func (r *SiteRegistry) Update(url string, score int, status domain.SiteStatus, lastCheck string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	site, ok := r.sites[url]
	if !ok {
		return false
	}

	site.Score = score
	site.Status = status
	site.LastCheck = lastCheck
	r.sites[url] = site
	return true
}

// MarkError flags a URL whose scheduled check failed, keeping its last score.
// Like Update, it no-ops when the record is gone.
func (r *SiteRegistry) MarkError(url string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	site, ok := r.sites[url]
	if !ok {
		return false
	}

	site.Status = domain.StatusError
	r.sites[url] = site
	return true
}

// Len reports the current number of registered sites.
func (r *SiteRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sites)
}
