package audio

import (
	"fmt"

	"github.com/ardnew/softaudio/pkg"
	"github.com/ardnew/softaudio/topology"
)

// PacketSize is the size of one isochronous audio packet in bytes.
// All buffer traffic moves in units of this size.
const PacketSize = topology.PacketSize

// DefaultBufferPackets is the default ring capacity in packets.
const DefaultBufferPackets = 64

// Buffer is a byte ring moving fixed-size audio packets between the guest
// and the host backend. The producer and consumer counters grow without
// bound; occupancy is their difference and positions are taken modulo the
// capacity. Wraparound of the counters themselves is harmless because only
// the difference is ever used.
type Buffer struct {
	data []byte
	size uint32
	prod uint32
	cons uint32
}

// Init sizes the ring to hold size bytes, rounded down to a whole number
// of packets, and empties it. Re-initializing an existing ring discards
// any buffered data.
func (b *Buffer) Init(size int) error {
	size -= size % PacketSize
	if size < PacketSize {
		return fmt.Errorf("ring of %d bytes: %w", size, pkg.ErrBufferTooSmall)
	}
	if len(b.data) != size {
		b.data = make([]byte, size)
	}
	b.size = uint32(size)
	b.prod = 0
	b.cons = 0
	return nil
}

// Fini releases the ring's storage.
func (b *Buffer) Fini() {
	b.data = nil
	b.size = 0
	b.prod = 0
	b.cons = 0
}

// Size returns the ring capacity in bytes.
func (b *Buffer) Size() int {
	return int(b.size)
}

// Used returns the number of buffered bytes.
func (b *Buffer) Used() int {
	return int(b.prod - b.cons)
}

// Free returns the number of unoccupied bytes.
func (b *Buffer) Free() int {
	return int(b.size) - b.Used()
}

// Put copies one packet into the ring. It accepts only exactly PacketSize
// bytes and returns 0, dropping the data, when the packet does not fit.
func (b *Buffer) Put(data []byte) int {
	if len(data) != PacketSize {
		return 0
	}
	if b.Free() < PacketSize {
		return 0
	}
	copy(b.data[b.prod%b.size:], data)
	b.prod += PacketSize
	return PacketSize
}

// Get consumes n buffered bytes and returns them as a slice into the ring,
// valid until the next Put or Alloc at that position. It returns nil when
// the ring is empty or holds fewer than n bytes; a zero-length read from a
// non-empty ring succeeds with an empty slice. The returned slice may be
// shorter than n when the ring wraps at the requested position.
func (b *Buffer) Get(n int) []byte {
	if n < 0 || b.Used() == 0 || b.Used() < n {
		return nil
	}
	pos := b.cons % b.size
	if avail := b.size - pos; uint32(n) > avail {
		n = int(avail)
	}
	data := b.data[pos : pos+uint32(n)]
	b.cons += uint32(n)
	return data
}

// Alloc reserves n bytes of producer space and returns them for the
// caller to fill in place. It returns nil when the ring has less than n
// bytes free. Like Get, the slice may be clipped at the wrap boundary.
func (b *Buffer) Alloc(n int) []byte {
	if n <= 0 || b.Free() < n {
		return nil
	}
	pos := b.prod % b.size
	if avail := b.size - pos; uint32(n) > avail {
		n = int(avail)
	}
	data := b.data[pos : pos+uint32(n)]
	b.prod += uint32(n)
	return data
}
