package urid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryStableIDs(t *testing.T) {
	r := NewRegistry()

	a := r.Map("urn:example:a")
	b := r.Map("urn:example:b")

	require.NotEqual(t, Invalid, a)
	require.NotEqual(t, Invalid, b)
	require.NotEqual(t, a, b)

	require.Equal(t, a, r.Map("urn:example:a"), "repeated lookups are stable")
	require.Equal(t, 2, r.Len())
}

func TestRegistryEmptyURI(t *testing.T) {
	r := NewRegistry()

	require.Equal(t, Invalid, r.Map(""))
	require.Equal(t, 0, r.Len())
}

func TestRegistryUnmap(t *testing.T) {
	r := NewRegistry()
	id := r.Map("urn:example:a")

	require.Equal(t, "urn:example:a", r.Unmap(id))
	require.Equal(t, "", r.Unmap(URID(999)))
	require.Equal(t, "", r.Unmap(Invalid))
}

func TestRegistryConcurrentMap(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup

	ids := make([]URID, 32)

	for i := range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			ids[i] = r.Map("urn:example:shared")
		}()
	}

	wg.Wait()

	for _, id := range ids {
		require.Equal(t, ids[0], id)
	}

	require.Equal(t, 1, r.Len())
}
