package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderstone/heritage/pkg/errors"
)

func TestParseScope(t *testing.T) {
	t.Run("property encoding", func(t *testing.T) {
		scope, err := ParseScope("site-438")
		require.NoError(t, err)
		assert.True(t, scope.IsProperty())
		assert.Equal(t, "438", scope.ID)
	})

	t.Run("component encoding", func(t *testing.T) {
		scope, err := ParseScope("Q186348")
		require.NoError(t, err)
		assert.True(t, scope.IsComponent())
		assert.Equal(t, "Q186348", scope.ID)
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := ParseScope("")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("bare prefix", func(t *testing.T) {
		_, err := ParseScope("site-")
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestScopeRoundTrip(t *testing.T) {
	for _, encoded := range []string{"site-438", "site-1133", "Q186348"} {
		scope, err := ParseScope(encoded)
		require.NoError(t, err)
		assert.Equal(t, encoded, scope.String())
	}
}

func TestScopeConstructors(t *testing.T) {
	property := PropertyScope("1133")
	assert.Equal(t, "site-1133", property.String())
	assert.True(t, property.IsProperty())
	assert.False(t, property.IsComponent())

	component := ComponentScope("Q186348")
	assert.Equal(t, "Q186348", component.String())
	assert.True(t, component.IsComponent())
}

func TestScopeKindString(t *testing.T) {
	assert.Equal(t, "property", ScopeProperty.String())
	assert.Equal(t, "component", ScopeComponent.String())
	assert.Equal(t, "unknown", ScopeKind(99).String())
}
