package sites

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderstone/heritage/pkg/errors"
)

func TestSetBasicOperations(t *testing.T) {
	set := NewSet()

	site := NewSite(438)
	site.SetTranslation("en", Translation{Name: "Historic Centre of Kraków"})

	t.Run("add and get", func(t *testing.T) {
		require.NoError(t, set.Add(site))

		got, ok := set.Get("438")
		require.True(t, ok)
		assert.Equal(t, 438, got.IDNumber)
	})

	t.Run("add duplicate fails", func(t *testing.T) {
		err := set.Add(NewSite(438))
		require.Error(t, err)
		assert.True(t, errors.IsAlreadyExists(err))
	})

	t.Run("add nil fails", func(t *testing.T) {
		assert.Error(t, set.Add(nil))
	})

	t.Run("set overwrites", func(t *testing.T) {
		replacement := NewSite(438)
		replacement.Region = "Europe and North America"
		require.NoError(t, set.Set("438", replacement))

		got, _ := set.Get("438")
		assert.Equal(t, "Europe and North America", got.Region)
	})

	t.Run("exists and len", func(t *testing.T) {
		assert.True(t, set.Exists("438"))
		assert.False(t, set.Exists("9999"))
		assert.Equal(t, 1, set.Len())
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, set.Delete("438"))
		assert.False(t, set.Exists("438"))
		assert.True(t, errors.IsNotFound(set.Delete("438")))
	})
}

func TestSetListSorted(t *testing.T) {
	set := NewSet(WithCapacity(4))

	// Insert out of numeric order; ids 9 vs 31 also catch lexicographic sorting
	for _, n := range []int{1133, 9, 438, 31} {
		require.NoError(t, set.Add(NewSite(n)))
	}

	list := set.List()
	require.Len(t, list, 4)

	got := make([]int, len(list))
	for i, site := range list {
		got[i] = site.IDNumber
	}
	assert.Equal(t, []int{9, 31, 438, 1133}, got)
}

func TestSetWithSites(t *testing.T) {
	a := NewSite(1)
	b := NewSite(2)

	set := NewSet(WithSites([]*Site{a, b, nil}))
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Exists("1"))
	assert.True(t, set.Exists("2"))
}

func TestSetForEach(t *testing.T) {
	set := NewSet()
	for _, n := range []int{1, 2, 3} {
		require.NoError(t, set.Add(NewSite(n)))
	}

	seen := 0
	set.ForEach(func(id string, site *Site) bool {
		seen++
		return seen < 2 // stop early
	})
	assert.Equal(t, 2, seen)
}

func TestSetComponentCount(t *testing.T) {
	set := NewSet()

	withComponents := NewSite(1133)
	withComponents.AttachComponents([]Component{
		{ComponentID: "Q1", ExternalURI: "http://www.wikidata.org/entity/Q1"},
		{ComponentID: "Q2", ExternalURI: "http://www.wikidata.org/entity/Q2"},
	})
	require.NoError(t, set.Add(withComponents))
	require.NoError(t, set.Add(NewSite(438)))

	assert.Equal(t, 2, set.ComponentCount())
}

func TestSetConcurrentAccess(t *testing.T) {
	set := NewSet()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = set.Set(NewSite(n).ID, NewSite(n))
			set.Get("25")
			set.Len()
			set.List()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, set.Len())
}

func TestSetClear(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.Add(NewSite(1)))

	set.Clear()
	assert.Equal(t, 0, set.Len())
}
