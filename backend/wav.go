package backend

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ardnew/softaudio/pkg"
)

// WAV is a file-backed backend: playback is encoded into a WAV stream and
// capture is decoded from one. A direction without a file behaves like the
// null backend. The owner drives Pump to run the voice callbacks.
type WAV struct {
	outW io.WriteSeeker
	inR  io.ReadSeeker

	out *wavOutput
	in  *wavInput
}

var _ Backend = (*WAV)(nil)

// NewWAV creates a WAV backend. outW receives encoded playback; inR
// supplies capture data. Either may be nil.
func NewWAV(outW io.WriteSeeker, inR io.ReadSeeker) *WAV {
	return &WAV{outW: outW, inR: inR}
}

// OpenOutput implements Backend.
func (b *WAV) OpenOutput(f Format, onAvail AvailFunc) (OutputVoice, error) {
	b.out = &wavOutput{format: f, onAvail: onAvail, left: 255, right: 255}
	if b.outW != nil {
		b.out.enc = wav.NewEncoder(b.outW, f.SampleRate, f.Bits, f.Channels, 1)
	}
	return b.out, nil
}

// OpenInput implements Backend.
func (b *WAV) OpenInput(f Format, onAvail AvailFunc) (InputVoice, error) {
	b.in = &wavInput{format: f, onAvail: onAvail, level: 255}
	if b.inR != nil {
		dec := wav.NewDecoder(b.inR)
		if !dec.IsValidFile() {
			return nil, fmt.Errorf("open input voice: %w", pkg.ErrInvalidRequest)
		}
		b.in.dec = dec
	}
	return b.in, nil
}

// Pump offers avail bytes of transfer space to each active voice.
func (b *WAV) Pump(avail int) {
	if b.out != nil && b.out.active {
		b.out.onAvail(avail)
	}
	if b.in != nil && b.in.active {
		b.in.onAvail(avail)
	}
}

// Close finalizes the encoded file and releases both voices.
func (b *WAV) Close() error {
	var err error
	if b.out != nil {
		err = b.out.Close()
	}
	if b.in != nil {
		if cerr := b.in.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type wavOutput struct {
	format  Format
	onAvail AvailFunc
	enc     *wav.Encoder

	active      bool
	mute        bool
	left, right uint8
	closed      bool
}

// Write encodes interleaved S16LE frames, applying mute and the channel
// levels on the way out.
func (v *wavOutput) Write(p []byte) (int, error) {
	if v.closed {
		return 0, pkg.ErrClosed
	}
	if v.enc == nil {
		return len(p), nil
	}

	samples := len(p) / 2
	data := make([]int, samples)
	for i := 0; i < samples; i++ {
		s := int(int16(binary.LittleEndian.Uint16(p[i*2:])))
		if v.mute {
			s = 0
		} else if v.format.Channels == 2 && i%2 == 1 {
			s = s * int(v.right) / 255
		} else {
			s = s * int(v.left) / 255
		}
		data[i] = s
	}

	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: v.format.Channels,
			SampleRate:  v.format.SampleRate,
		},
		Data:           data,
		SourceBitDepth: v.format.Bits,
	}
	if err := v.enc.Write(buf); err != nil {
		return 0, fmt.Errorf("encode: %w", err)
	}
	return len(p), nil
}

func (v *wavOutput) SetActive(active bool) { v.active = active }

func (v *wavOutput) SetVolume(mute bool, left, right uint8) {
	v.mute, v.left, v.right = mute, left, right
}

func (v *wavOutput) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	if v.enc != nil {
		return v.enc.Close()
	}
	return nil
}

type wavInput struct {
	format  Format
	onAvail AvailFunc
	dec     *wav.Decoder

	active bool
	mute   bool
	level  uint8
	closed bool
}

// Read decodes interleaved S16LE frames into p, scaled by the capture
// level and padded with silence when the decoder runs dry.
func (v *wavInput) Read(p []byte) (int, error) {
	if v.closed {
		return 0, pkg.ErrClosed
	}

	n := 0
	want := len(p) / 2
	if v.dec != nil && want > 0 && !v.mute {
		buf := &gaudio.IntBuffer{
			Format: &gaudio.Format{
				NumChannels: v.format.Channels,
				SampleRate:  v.format.SampleRate,
			},
			Data: make([]int, want),
		}
		var err error
		n, err = v.dec.PCMBuffer(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("decode: %w", err)
		}
		for i := 0; i < n; i++ {
			s := buf.Data[i] * int(v.level) / 255
			binary.LittleEndian.PutUint16(p[i*2:], uint16(int16(s)))
		}
	}
	for i := n * 2; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

func (v *wavInput) SetActive(active bool) { v.active = active }

func (v *wavInput) SetVolume(mute bool, level uint8) {
	v.mute, v.level = mute, level
}

func (v *wavInput) Close() error {
	v.closed = true
	return nil
}
