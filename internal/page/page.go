// Package page implements the fixed-size page pool described in
// SPEC_FULL.md §4.1: a growable sequence of 4 KiB pages addressed by
// index, each tracking how many trailing bytes remain unwritten.
package page

import (
	"fmt"
)

// Size is the fixed byte width of every page. It is not a tunable; the
// engine's config layer validates any configured page size against it
// (SPEC_FULL.md §6.3).
const Size = 4096

// Link names a contiguous byte range within a single page: spec.md's
// page-link triple (page-index, start-offset, length).
type Link struct {
	PageIndex uint64
	Start     uint32
	Length    uint32
}

// End returns the first byte past the link's range.
func (l Link) End() uint32 { return l.Start + l.Length }

// RawPosition linearises the link's start as page-index*Size + start,
// used by the allocator's AllocatedSize and by tail-link bookkeeping.
func (l Link) RawPosition() uint64 {
	return l.PageIndex*Size + uint64(l.Start)
}

// Error reports a programmer misuse of the page pool: an out-of-range
// page index, an offset outside the page, or a length mismatch on
// update. Per §4.1, all such calls are programmer errors to be detected
// and failed fast, which in this Go rendition means returning a typed
// error rather than silently corrupting memory.
type Error struct {
	Message string
}

func (e *Error) Error() string { return "page: " + e.Message }

func errf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Page is one fixed-size arena slot plus the bookkeeping spec.md §4.1
// requires: its own index (redundant, kept for integrity checks) and a
// free counter tracking bytes from the tail not yet written by
// AttachData.
type Page struct {
	Index uint64
	Free  uint16
	Data  [Size]byte
}

func newPage(index uint64) *Page {
	return &Page{Index: index, Free: Size}
}

// CanFit reports whether an append-style AttachData of n bytes would fit
// in the page's remaining free space.
func (p *Page) CanFit(n int) bool {
	return n >= 0 && n <= int(p.Free)
}

// AttachData appends bytes at the page's current tail (Size - Free),
// decrementing Free. Used only by append-style layouts; the storage
// engine itself writes via UpdateData at allocator-chosen offsets.
func (p *Page) AttachData(data []byte) (Link, error) {
	if !p.CanFit(len(data)) {
		return Link{}, errf("page %d: attach_data: %d bytes requested, only %d free", p.Index, len(data), p.Free)
	}
	start := Size - int(p.Free)
	copy(p.Data[start:start+len(data)], data)
	p.Free -= uint16(len(data))
	return Link{PageIndex: p.Index, Start: uint32(start), Length: uint32(len(data))}, nil
}

// UpdateData overwrites the byte range named by link with data. It does
// not change Free; it is the primary write path for allocator-placed
// records.
func (p *Page) UpdateData(data []byte, link Link) error {
	if link.PageIndex != p.Index {
		return errf("page %d: update_data: link targets page %d", p.Index, link.PageIndex)
	}
	if uint32(len(data)) != link.Length {
		return errf("page %d: update_data: data length %d does not match link length %d", p.Index, len(data), link.Length)
	}
	if err := p.checkRange(link); err != nil {
		return err
	}
	copy(p.Data[link.Start:link.End()], data)
	return nil
}

// EraseData zeroes the range named by link without changing Free.
func (p *Page) EraseData(link Link) error {
	if link.PageIndex != p.Index {
		return errf("page %d: erase_data: link targets page %d", p.Index, link.PageIndex)
	}
	if err := p.checkRange(link); err != nil {
		return err
	}
	clear(p.Data[link.Start:link.End()])
	return nil
}

// GetByLink returns a read-only view of the byte range named by link.
func (p *Page) GetByLink(link Link) ([]byte, error) {
	if link.PageIndex != p.Index {
		return nil, errf("page %d: get_by_link: link targets page %d", p.Index, link.PageIndex)
	}
	if err := p.checkRange(link); err != nil {
		return nil, err
	}
	out := make([]byte, link.Length)
	copy(out, p.Data[link.Start:link.End()])
	return out, nil
}

func (p *Page) checkRange(link Link) error {
	if link.Length == 0 || link.Length > Size {
		return errf("page %d: link length %d out of (0, %d]", p.Index, link.Length, Size)
	}
	if link.Start >= Size || link.End() > Size {
		return errf("page %d: link [%d, %d) out of range", p.Index, link.Start, link.End())
	}
	return nil
}

// Info is the durable-format header described in SPEC_FULL.md §6.3 /
// spec.md §6: an 8-byte big-endian page index followed by a 2-byte
// big-endian free counter. The core performs no I/O itself; this exists
// so a future persistence layer has a stable header to write.
type Info struct {
	Index uint64
	Free  uint16
}

// HeaderSize is sizeof(uint64) + 2, matching spec.md's "sizeof(usize) + 2
// bytes" header.
const HeaderSize = 8 + 2

func (pi Info) Encode() []byte {
	b := make([]byte, HeaderSize)
	for i := 0; i < 8; i++ {
		b[7-i] = byte(pi.Index >> (8 * i))
	}
	b[8] = byte(pi.Free >> 8)
	b[9] = byte(pi.Free)
	return b
}

// Pool owns the growable sequence of pages. It is always reached through
// a Shared handle (see shared.go); Pool itself assumes external
// synchronization is already held.
type Pool struct {
	pages []*Page
}

// NewPool returns an empty pool with no pages.
func NewPool() *Pool {
	return &Pool{}
}

// AddPage appends a new zero-initialised page and returns its dense
// index.
func (p *Pool) AddPage() uint64 {
	idx := uint64(len(p.pages))
	p.pages = append(p.pages, newPage(idx))
	return idx
}

// GetPage returns the page at index i, failing if i is out of range.
func (p *Pool) GetPage(i uint64) (*Page, error) {
	if i >= uint64(len(p.pages)) {
		return nil, errf("get_page: index %d out of range (have %d pages)", i, len(p.pages))
	}
	return p.pages[i], nil
}

// PageCount returns the number of pages currently in the pool.
func (p *Pool) PageCount() uint64 {
	return uint64(len(p.pages))
}
