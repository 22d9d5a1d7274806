package sites

import (
	"github.com/wanderstone/heritage/pkg/errors"
)

// Index is a read-only lookup structure over a finished dataset. It is built
// explicitly by whoever needs constant-time lookups and shares the underlying
// sites; callers must not mutate what they get back.
type Index struct {
	sites      map[string]*Site
	components map[string]*Component
	byURI      map[string]*Component
	parents    map[string]*Site
}

// NewIndex builds an index over the given sites. Later duplicates of an id
// or URI do not displace earlier entries; a validated dataset has neither.
func NewIndex(list []*Site) *Index {
	ix := &Index{
		sites:      make(map[string]*Site, len(list)),
		components: make(map[string]*Component),
		byURI:      make(map[string]*Component),
		parents:    make(map[string]*Site),
	}

	for _, site := range list {
		if site == nil {
			continue
		}
		if _, exists := ix.sites[site.ID]; !exists {
			ix.sites[site.ID] = site
		}
		for i := range site.Components {
			component := &site.Components[i]
			if _, exists := ix.components[component.ComponentID]; !exists {
				ix.components[component.ComponentID] = component
				ix.parents[component.ComponentID] = site
			}
			if _, exists := ix.byURI[component.ExternalURI]; !exists {
				ix.byURI[component.ExternalURI] = component
			}
		}
	}

	return ix
}

// Site returns the site with the given id.
func (ix *Index) Site(id string) (*Site, error) {
	site, ok := ix.sites[id]
	if !ok {
		return nil, errors.NewNotFoundError("site", id)
	}
	return site, nil
}

// Component returns the component with the given component id.
func (ix *Index) Component(id string) (*Component, error) {
	component, ok := ix.components[id]
	if !ok {
		return nil, errors.NewNotFoundError("component", id)
	}
	return component, nil
}

// ComponentByURI returns the component with the given external URI.
func (ix *Index) ComponentByURI(uri string) (*Component, error) {
	component, ok := ix.byURI[uri]
	if !ok {
		return nil, errors.NewNotFoundError("component URI", uri)
	}
	return component, nil
}

// Parent returns the site owning the given component id.
func (ix *Index) Parent(componentID string) (*Site, error) {
	site, ok := ix.parents[componentID]
	if !ok {
		return nil, errors.NewNotFoundError("component", componentID)
	}
	return site, nil
}

// Resolve looks up whatever a visit scope refers to. Exactly one of the
// returned site and component is non-nil on success.
func (ix *Index) Resolve(scope VisitScope) (*Site, *Component, error) {
	if scope.IsProperty() {
		site, err := ix.Site(scope.ID)
		if err != nil {
			return nil, nil, err
		}
		return site, nil, nil
	}

	component, err := ix.Component(scope.ID)
	if err != nil {
		return nil, nil, err
	}
	return nil, component, nil
}

// SiteCount returns the number of indexed sites.
func (ix *Index) SiteCount() int {
	return len(ix.sites)
}

// ComponentCount returns the number of indexed components.
func (ix *Index) ComponentCount() int {
	return len(ix.components)
}
