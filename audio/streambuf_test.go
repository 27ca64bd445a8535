package audio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/softaudio/pkg"
)

func packet(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, PacketSize)
}

func TestBufferInit(t *testing.T) {
	var b Buffer

	// Capacity rounds down to a whole number of packets.
	require.NoError(t, b.Init(5*PacketSize+100))
	assert.Equal(t, 5*PacketSize, b.Size())
	assert.Zero(t, b.Used())
	assert.Equal(t, 5*PacketSize, b.Free())

	// Too small to hold even one packet.
	err := b.Init(PacketSize - 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrBufferTooSmall)
}

func TestBufferPutGet(t *testing.T) {
	var b Buffer
	require.NoError(t, b.Init(4*PacketSize))

	// Only whole packets are accepted.
	assert.Zero(t, b.Put(make([]byte, PacketSize-1)))
	assert.Zero(t, b.Put(make([]byte, PacketSize+1)))
	assert.Zero(t, b.Used())

	for i := 0; i < 4; i++ {
		assert.Equal(t, PacketSize, b.Put(packet(byte(i))))
		assert.Equal(t, (i+1)*PacketSize, b.Used())
	}

	// Full ring drops the packet.
	assert.Zero(t, b.Put(packet(9)))
	assert.Equal(t, 4*PacketSize, b.Used())
	assert.Zero(t, b.Free())

	for i := 0; i < 4; i++ {
		data := b.Get(PacketSize)
		require.NotNil(t, data)
		assert.Equal(t, packet(byte(i)), data)
	}

	// Underrun returns nil and consumes nothing.
	assert.Nil(t, b.Get(PacketSize))
	assert.Zero(t, b.Used())
}

func TestBufferGetZeroLength(t *testing.T) {
	var b Buffer
	require.NoError(t, b.Init(2*PacketSize))

	// Zero-length reads fail on an empty ring and succeed once it holds
	// anything, consuming nothing either way.
	assert.Nil(t, b.Get(0))

	b.Put(packet(1))
	data := b.Get(0)
	require.NotNil(t, data)
	assert.Empty(t, data)
	assert.Equal(t, PacketSize, b.Used())
}

func TestBufferWraparound(t *testing.T) {
	var b Buffer
	require.NoError(t, b.Init(2*PacketSize))

	// Many more packets than the capacity, so the positions wrap.
	for i := 0; i < 100; i++ {
		require.Equal(t, PacketSize, b.Put(packet(byte(i))))
		data := b.Get(PacketSize)
		require.NotNil(t, data)
		require.Equal(t, packet(byte(i)), data)
	}
	assert.Zero(t, b.Used())
	assert.Equal(t, 2*PacketSize, b.Free())
}

func TestBufferOccupancyBounds(t *testing.T) {
	var b Buffer
	require.NoError(t, b.Init(3*PacketSize))

	check := func() {
		assert.GreaterOrEqual(t, b.Used(), 0)
		assert.LessOrEqual(t, b.Used(), b.Size())
		assert.Equal(t, b.Size(), b.Used()+b.Free())
	}

	check()
	for i := 0; i < 10; i++ {
		b.Put(packet(byte(i)))
		check()
	}
	for i := 0; i < 10; i++ {
		b.Get(PacketSize)
		check()
	}
}

func TestBufferAlloc(t *testing.T) {
	var b Buffer
	require.NoError(t, b.Init(2*PacketSize))

	data := b.Alloc(PacketSize)
	require.NotNil(t, data)
	require.Len(t, data, PacketSize)
	copy(data, packet(0xAB))
	assert.Equal(t, PacketSize, b.Used())

	require.NotNil(t, b.Alloc(PacketSize))
	assert.Nil(t, b.Alloc(PacketSize), "full ring")

	got := b.Get(PacketSize)
	require.NotNil(t, got)
	assert.Equal(t, packet(0xAB), got)
}

func TestBufferReinitClears(t *testing.T) {
	var b Buffer
	require.NoError(t, b.Init(2*PacketSize))
	b.Put(packet(1))
	require.NotZero(t, b.Used())

	require.NoError(t, b.Init(2*PacketSize))
	assert.Zero(t, b.Used())
	assert.Nil(t, b.Get(PacketSize))
}
