package sites

import (
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/wanderstone/heritage/pkg/errors"
)

// Set is a concurrent safe collection of sites keyed by site ID.
type Set struct {
	mu    sync.RWMutex
	sites map[string]*Site
}

// SetOption defines a function that configures a Set instance.
type SetOption func(*Set)

// WithCapacity sets the initial capacity of the site map.
func WithCapacity(capacity int) SetOption {
	return func(s *Set) {
		s.sites = make(map[string]*Site, capacity)
	}
}

// WithSites initializes the set with existing sites.
func WithSites(sites []*Site) SetOption {
	return func(s *Set) {
		s.sites = make(map[string]*Site, len(sites))
		for _, site := range sites {
			if site != nil {
				s.sites[site.ID] = site
			}
		}
	}
}

// NewSet creates a new site Set with optional configuration.
func NewSet(opts ...SetOption) *Set {
	s := &Set{
		sites: make(map[string]*Site),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns a site by id and whether it exists.
func (s *Set) Get(id string) (*Site, bool) {
	s.mu.RLock()
	site, ok := s.sites[id]
	s.mu.RUnlock()
	return site, ok
}

// Set sets a site by id. Returns an error if site is nil.
func (s *Set) Set(id string, site *Site) error {
	if site == nil {
		return fmt.Errorf("site cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites[id] = site
	return nil
}

// Add adds a site, returning an error if it already exists.
func (s *Set) Add(site *Site) error {
	if site == nil {
		return fmt.Errorf("site cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sites[site.ID]; exists {
		return fmt.Errorf("site %s: %w", site.ID, errors.ErrAlreadyExists)
	}

	s.sites[site.ID] = site
	return nil
}

// Delete removes a site by id. Returns an error if the site doesn't exist.
func (s *Set) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sites[id]; !exists {
		return fmt.Errorf("site %s: %w", id, errors.ErrNotFound)
	}

	delete(s.sites, id)
	return nil
}

// Exists checks if a site exists without returning it.
func (s *Set) Exists(id string) bool {
	s.mu.RLock()
	_, exists := s.sites[id]
	s.mu.RUnlock()
	return exists
}

// Len returns the number of sites.
func (s *Set) Len() int {
	s.mu.RLock()
	length := len(s.sites)
	s.mu.RUnlock()
	return length
}

// List returns a slice of all sites sorted by numeric id number. This is the
// publish order, so serializing the list twice yields identical output.
func (s *Set) List() []*Site {
	s.mu.RLock()
	sites := make([]*Site, 0, len(s.sites))
	for _, site := range s.sites {
		sites = append(sites, site)
	}
	s.mu.RUnlock()

	sort.Slice(sites, func(i, j int) bool {
		return sites[i].IDNumber < sites[j].IDNumber
	})
	return sites
}

// Map returns a copy of the site map.
func (s *Set) Map() map[string]*Site {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Site, len(s.sites))
	maps.Copy(result, s.sites)
	return result
}

// ForEach applies a function to each site. The function should not modify the site.
// If the function returns false, iteration stops early.
func (s *Set) ForEach(fn func(id string, site *Site) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, site := range s.sites {
		if !fn(id, site) {
			break
		}
	}
}

// ComponentCount returns the total number of components across all sites.
func (s *Set) ComponentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, site := range s.sites {
		total += len(site.Components)
	}
	return total
}

// Clear removes all sites.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Clear existing map instead of allocating new one
	for k := range s.sites {
		delete(s.sites, k)
	}
}
