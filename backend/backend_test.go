package backend

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/softaudio/pkg"
)

var testFormat = Format{SampleRate: 48000, Channels: 2, Bits: 16}

func TestFormat(t *testing.T) {
	assert.Equal(t, 4, testFormat.BytesPerFrame())
	assert.Equal(t, 192000, testFormat.BytesPerSecond())

	mono := Format{SampleRate: 48000, Channels: 1, Bits: 16}
	assert.Equal(t, 2, mono.BytesPerFrame())
}

func TestNullBackend(t *testing.T) {
	b := NewNull()

	var outAvail, inAvail []int
	out, err := b.OpenOutput(testFormat, func(n int) { outAvail = append(outAvail, n) })
	require.NoError(t, err)
	in, err := b.OpenInput(testFormat, func(n int) { inAvail = append(inAvail, n) })
	require.NoError(t, err)

	// Inactive voices are not pumped.
	b.Pump(192)
	assert.Empty(t, outAvail)
	assert.Empty(t, inAvail)

	out.SetActive(true)
	b.Pump(192)
	assert.Equal(t, []int{192}, outAvail)
	assert.Empty(t, inAvail)

	in.SetActive(true)
	b.Pump(384)
	assert.Equal(t, []int{192, 384}, outAvail)
	assert.Equal(t, []int{384}, inAvail)

	n, err := out.Write(make([]byte, 192))
	require.NoError(t, err)
	assert.Equal(t, 192, n)

	p := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	n, err = in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{0, 0, 0, 0}, p, "silence")

	require.NoError(t, b.Close())
	_, err = out.Write(make([]byte, 192))
	assert.ErrorIs(t, err, pkg.ErrClosed)
	_, err = in.Read(p)
	assert.ErrorIs(t, err, pkg.ErrClosed)
}

// s16le packs samples into an interleaved little-endian byte stream.
func s16le(samples ...int16) []byte {
	p := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(p[i*2:], uint16(s))
	}
	return p
}

func TestWAVOutputRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	b := NewWAV(f, nil)
	out, err := b.OpenOutput(testFormat, func(int) {})
	require.NoError(t, err)

	want := []int16{100, -100, 32767, -32768, 0, 1}
	n, err := out.Write(s16le(want...))
	require.NoError(t, err)
	assert.Equal(t, len(want)*2, n)
	require.NoError(t, b.Close())

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()

	dec := wav.NewDecoder(r)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, buf.Data, len(want))
	for i, s := range want {
		assert.Equal(t, int(s), buf.Data[i], "sample %d", i)
	}
}

func TestWAVOutputMuteAndLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	b := NewWAV(f, nil)
	out, err := b.OpenOutput(testFormat, func(int) {})
	require.NoError(t, err)

	// Half level on the left channel, muted second write.
	out.SetVolume(false, 128, 255)
	_, err = out.Write(s16le(1000, 1000))
	require.NoError(t, err)
	out.SetVolume(true, 255, 255)
	_, err = out.Write(s16le(1000, 1000))
	require.NoError(t, err)
	require.NoError(t, b.Close())

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()

	buf, err := wav.NewDecoder(r).FullPCMBuffer()
	require.NoError(t, err)
	require.Len(t, buf.Data, 4)
	assert.Equal(t, 1000*128/255, buf.Data[0])
	assert.Equal(t, 1000, buf.Data[1])
	assert.Equal(t, 0, buf.Data[2], "muted")
	assert.Equal(t, 0, buf.Data[3], "muted")
}

func writeTestWAV(t *testing.T, path string, f Format, samples []int) {
	t.Helper()
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	enc := wav.NewEncoder(file, f.SampleRate, f.Bits, f.Channels, 1)
	require.NoError(t, enc.Write(&gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: f.Channels,
			SampleRate:  f.SampleRate,
		},
		Data:           samples,
		SourceBitDepth: f.Bits,
	}))
	require.NoError(t, enc.Close())
}

func TestWAVInput(t *testing.T) {
	mono := Format{SampleRate: 48000, Channels: 1, Bits: 16}
	path := filepath.Join(t.TempDir(), "in.wav")
	writeTestWAV(t, path, mono, []int{10, 20, 30})

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()

	b := NewWAV(nil, r)
	in, err := b.OpenInput(mono, func(int) {})
	require.NoError(t, err)

	// Three samples from the file, one of padded silence.
	p := make([]byte, 8)
	n, err := in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, s16le(10, 20, 30, 0), p)

	// Past the end the voice keeps producing silence.
	p = []byte{0xAA, 0xAA}
	_, err = in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, s16le(0), p)
}

func TestWAVInputLevelAndMute(t *testing.T) {
	mono := Format{SampleRate: 48000, Channels: 1, Bits: 16}
	path := filepath.Join(t.TempDir(), "in.wav")
	writeTestWAV(t, path, mono, []int{1000, 1000, 1000})

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()

	b := NewWAV(nil, r)
	in, err := b.OpenInput(mono, func(int) {})
	require.NoError(t, err)

	// Full level by default, then half level, then mute.
	p := make([]byte, 2)
	_, err = in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, s16le(1000), p)

	in.SetVolume(false, 128)
	_, err = in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, s16le(int16(1000*128/255)), p)

	in.SetVolume(true, 255)
	_, err = in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, s16le(0), p, "muted")
}

func TestWAVInputInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0o644))

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()

	b := NewWAV(nil, r)
	_, err = b.OpenInput(Format{SampleRate: 48000, Channels: 1, Bits: 16}, func(int) {})
	require.Error(t, err)
}

func TestWAVWithoutFiles(t *testing.T) {
	b := NewWAV(nil, nil)

	out, err := b.OpenOutput(testFormat, func(int) {})
	require.NoError(t, err)
	n, err := out.Write(make([]byte, 192))
	require.NoError(t, err)
	assert.Equal(t, 192, n)

	in, err := b.OpenInput(testFormat, func(int) {})
	require.NoError(t, err)
	p := []byte{1, 2, 3, 4}
	_, err = in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, p)

	require.NoError(t, b.Close())
}
