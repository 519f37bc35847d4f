package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixshelf/internal/domain"
)

func TestDebouncerOnlyLatestTokenCurrent(t *testing.T) {
	var d Debouncer
	t1 := d.Bump()
	t2 := d.Bump()
	t3 := d.Bump()

	assert.False(t, d.Current(t1))
	assert.False(t, d.Current(t2))
	assert.True(t, d.Current(t3))
}

func TestSearchEmptyTermClearsWithoutFetch(t *testing.T) {
	var s SearchState
	gen, fetch := s.Begin("cat")
	require.True(t, fetch)
	require.True(t, s.Resolve(gen, []domain.Image{image("1", "cat.png")}))

	_, fetch = s.Begin("")
	assert.False(t, fetch)
	assert.Nil(t, s.Results())
}

func TestSearchResolveReplacesWholesale(t *testing.T) {
	var s SearchState
	gen, _ := s.Begin("cat")
	require.True(t, s.Resolve(gen, []domain.Image{image("1", "cat.png")}))

	require.Len(t, s.Results(), 1)
	assert.Equal(t, "cat.png", s.Results()[0].Name)
}

func TestSearchStaleResponseDiscarded(t *testing.T) {
	var s SearchState
	slowGen, _ := s.Begin("ca")
	fastGen, _ := s.Begin("cat")

	require.True(t, s.Resolve(fastGen, []domain.Image{image("1", "cat.png")}))
	// The earlier request resolves late; it must not clobber the newer set.
	assert.False(t, s.Resolve(slowGen, []domain.Image{image("2", "car.png")}))

	require.Len(t, s.Results(), 1)
	assert.Equal(t, "cat.png", s.Results()[0].Name)
}

func TestSearchNoMatchesIsEmptyNotNil(t *testing.T) {
	var s SearchState
	gen, _ := s.Begin("zebra")
	require.True(t, s.Resolve(gen, nil))

	assert.NotNil(t, s.Results())
	assert.Empty(t, s.Results())
}

func TestSearchStaleFailureIgnored(t *testing.T) {
	var s SearchState
	oldGen, _ := s.Begin("ca")
	newGen, _ := s.Begin("cat")
	require.True(t, s.Resolve(newGen, []domain.Image{image("1", "cat.png")}))

	s.Fail(oldGen)
	assert.Len(t, s.Results(), 1)

	s.Fail(newGen)
	assert.Nil(t, s.Results())
}
