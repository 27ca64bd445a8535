package backend

import (
	"github.com/ardnew/softaudio/pkg"
)

// Null is a backend with no host device behind it: playback is discarded
// and capture produces silence. The owner drives Pump to run the voice
// callbacks, typically from a timer.
type Null struct {
	out *nullOutput
	in  *nullInput
}

var _ Backend = (*Null)(nil)

// NewNull creates a null backend.
func NewNull() *Null {
	return &Null{}
}

// OpenOutput implements Backend.
func (b *Null) OpenOutput(f Format, onAvail AvailFunc) (OutputVoice, error) {
	b.out = &nullOutput{format: f, onAvail: onAvail}
	return b.out, nil
}

// OpenInput implements Backend.
func (b *Null) OpenInput(f Format, onAvail AvailFunc) (InputVoice, error) {
	b.in = &nullInput{format: f, onAvail: onAvail}
	return b.in, nil
}

// Pump offers avail bytes of transfer space to each active voice.
func (b *Null) Pump(avail int) {
	if b.out != nil && b.out.active {
		b.out.onAvail(avail)
	}
	if b.in != nil && b.in.active {
		b.in.onAvail(avail)
	}
}

// Close implements Backend.
func (b *Null) Close() error {
	if b.out != nil {
		b.out.Close()
	}
	if b.in != nil {
		b.in.Close()
	}
	return nil
}

type nullOutput struct {
	format  Format
	onAvail AvailFunc
	active  bool
	closed  bool
}

func (v *nullOutput) Write(p []byte) (int, error) {
	if v.closed {
		return 0, pkg.ErrClosed
	}
	return len(p), nil
}

func (v *nullOutput) SetActive(active bool) { v.active = active }

func (v *nullOutput) SetVolume(mute bool, left, right uint8) {}

func (v *nullOutput) Close() error {
	v.closed = true
	return nil
}

type nullInput struct {
	format  Format
	onAvail AvailFunc
	active  bool
	closed  bool
}

func (v *nullInput) Read(p []byte) (int, error) {
	if v.closed {
		return 0, pkg.ErrClosed
	}
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func (v *nullInput) SetActive(active bool) { v.active = active }

func (v *nullInput) SetVolume(mute bool, level uint8) {}

func (v *nullInput) Close() error {
	v.closed = true
	return nil
}
