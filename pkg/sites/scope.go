package sites

import (
	"strings"

	"github.com/wanderstone/heritage/pkg/errors"
)

// WholePropertyPrefix marks a whole-property visit in the string encoding
// used by downstream consumers. Component ids must never begin with this
// prefix; the validator enforces that.
const WholePropertyPrefix = "site-"

// ScopeKind identifies what a visit scope refers to.
type ScopeKind int

// Visit scope kinds.
const (
	ScopeProperty ScopeKind = iota
	ScopeComponent
)

// String returns the string representation of a ScopeKind.
func (k ScopeKind) String() string {
	switch k {
	case ScopeProperty:
		return "property"
	case ScopeComponent:
		return "component"
	}
	return "unknown"
}

// VisitScope identifies either a whole property or a single component.
// The string encoding ("site-<id>" for properties, the bare component id
// otherwise) exists only at the serialization boundary; code paths carry
// the typed value.
type VisitScope struct {
	Kind ScopeKind
	ID   string
}

// PropertyScope returns a scope covering the whole property with the given site id.
func PropertyScope(siteID string) VisitScope {
	return VisitScope{Kind: ScopeProperty, ID: siteID}
}

// ComponentScope returns a scope covering a single component.
func ComponentScope(componentID string) VisitScope {
	return VisitScope{Kind: ScopeComponent, ID: componentID}
}

// ParseScope decodes the string encoding of a visit scope. A string carrying
// the whole-property prefix decodes to a property scope of the remainder;
// anything else decodes to a component scope.
func ParseScope(encoded string) (VisitScope, error) {
	if encoded == "" {
		return VisitScope{}, errors.NewValidationError("scope", encoded, "cannot be empty")
	}

	if rest, ok := strings.CutPrefix(encoded, WholePropertyPrefix); ok {
		if rest == "" {
			return VisitScope{}, errors.NewValidationError("scope", encoded, "missing site id after prefix")
		}
		return PropertyScope(rest), nil
	}

	return ComponentScope(encoded), nil
}

// String encodes the scope for serialization.
func (v VisitScope) String() string {
	if v.Kind == ScopeProperty {
		return WholePropertyPrefix + v.ID
	}
	return v.ID
}

// IsProperty reports whether the scope covers a whole property.
func (v VisitScope) IsProperty() bool {
	return v.Kind == ScopeProperty
}

// IsComponent reports whether the scope covers a single component.
func (v VisitScope) IsComponent() bool {
	return v.Kind == ScopeComponent
}
