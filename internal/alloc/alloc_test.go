package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nosqlite-go/nosqlite/internal/page"
)

func TestAllocateZeroRejected(t *testing.T) {
	a := New(page.NewShared(), BestFit, 4)
	_, err := a.Allocate(0)
	require.Error(t, err)
}

func TestAllocateExactlyFullPageThenAdvances(t *testing.T) {
	a := New(page.NewShared(), BestFit, 4)
	link, err := a.Allocate(page.Size)
	require.NoError(t, err)
	assert.EqualValues(t, 0, link.PageIndex)
	assert.EqualValues(t, 0, link.Start)

	next, err := a.Allocate(10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, next.PageIndex)
	assert.EqualValues(t, 0, next.Start)
}

func TestBestFitPicksSmallestQualifyingHole(t *testing.T) {
	a := New(page.NewShared(), BestFit, 4)
	big, _ := a.Allocate(100)
	small, _ := a.Allocate(20)
	a.Free(big)
	a.Free(small)

	got, err := a.Allocate(20)
	require.NoError(t, err)
	assert.Equal(t, small, got)
}

func TestWorstFitPicksLargestHole(t *testing.T) {
	a := New(page.NewShared(), WorstFit, 4)
	small, _ := a.Allocate(20)
	big, _ := a.Allocate(200)
	a.Free(small)
	a.Free(big)

	got, err := a.Allocate(20)
	require.NoError(t, err)
	assert.Equal(t, big.PageIndex, got.PageIndex)
	assert.Equal(t, big.Start, got.Start)
}

func TestAllocationsDoNotOverlap(t *testing.T) {
	a := New(page.NewShared(), BestFit, 4)
	var links []page.Link
	for i := 0; i < 20; i++ {
		l, err := a.Allocate(uint32(50 + i))
		require.NoError(t, err)
		links = append(links, l)
	}

	for i := range links {
		for j := range links {
			if i == j {
				continue
			}
			if links[i].PageIndex != links[j].PageIndex {
				continue
			}
			overlap := links[i].Start < links[j].End() && links[j].Start < links[i].End()
			assert.False(t, overlap, "links %d and %d overlap: %+v %+v", i, j, links[i], links[j])
		}
	}
}

func TestFreeExactLengthHoleLeavesNoLeftover(t *testing.T) {
	a := New(page.NewShared(), BestFit, 4)
	l, _ := a.Allocate(30)
	a.Free(l)

	got, err := a.Allocate(30)
	require.NoError(t, err)
	assert.Equal(t, l, got)
	assert.Equal(t, 0, a.holes.Len())
}

func TestAllocatedSizeTracksTail(t *testing.T) {
	a := New(page.NewShared(), BestFit, 4)
	_, _ = a.Allocate(100)
	assert.EqualValues(t, 100, a.AllocatedSize())
}
