package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachAndGetByLink(t *testing.T) {
	pool := NewPool()
	idx := pool.AddPage()
	p, err := pool.GetPage(idx)
	require.NoError(t, err)

	link, err := p.AttachData([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), link.Start)
	assert.Equal(t, uint32(5), link.Length)
	assert.Equal(t, uint16(Size-5), p.Free)

	got, err := p.GetByLink(link)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
}

func TestAttachExactlyFullPage(t *testing.T) {
	pool := NewPool()
	idx := pool.AddPage()
	p, _ := pool.GetPage(idx)

	data := make([]byte, Size)
	link, err := p.AttachData(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), p.Free)
	assert.False(t, p.CanFit(1))

	_, err = p.AttachData([]byte{1})
	require.Error(t, err)
	_ = link
}

func TestUpdateDataLengthMismatch(t *testing.T) {
	pool := NewPool()
	idx := pool.AddPage()
	p, _ := pool.GetPage(idx)
	link, err := p.AttachData([]byte("12345"))
	require.NoError(t, err)

	err = p.UpdateData([]byte("abc"), link)
	require.Error(t, err)

	err = p.UpdateData([]byte("abcde"), link)
	require.NoError(t, err)
	got, _ := p.GetByLink(link)
	assert.Equal(t, []byte("abcde"), got)
}

func TestEraseDataZeroesRange(t *testing.T) {
	pool := NewPool()
	idx := pool.AddPage()
	p, _ := pool.GetPage(idx)
	link, _ := p.AttachData([]byte("xyz"))

	require.NoError(t, p.EraseData(link))
	got, _ := p.GetByLink(link)
	assert.Equal(t, []byte{0, 0, 0}, got)
}

func TestGetPageOutOfRange(t *testing.T) {
	pool := NewPool()
	_, err := pool.GetPage(0)
	require.Error(t, err)
}

func TestSharedPoolClone(t *testing.T) {
	s := NewShared()
	idx := s.AddPage()
	clone := s.Clone()
	defer clone.Release()

	p, err := clone.GetPage(idx)
	require.NoError(t, err)
	assert.Equal(t, idx, p.Index)
	assert.EqualValues(t, 1, s.PageCount())
}
