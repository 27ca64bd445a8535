package audio

import (
	"fmt"

	"github.com/ardnew/softaudio/backend"
	"github.com/ardnew/softaudio/pkg"
)

// Alternate setting values of the streaming interfaces.
const (
	AltsetOff = 0 // Zero-bandwidth: stream disabled
	AltsetOn  = 1 // Operational: stream enabled
)

// PCM formats of the two streaming directions.
var (
	outputFormat = backend.Format{SampleRate: 48000, Channels: 2, Bits: 16}
	inputFormat  = backend.Format{SampleRate: 48000, Channels: 1, Bits: 16}
)

// outStream is the guest playback direction: iso OUT packets buffered
// toward a host output voice.
type outStream struct {
	altset uint8
	mute   bool
	vol    [2]uint8
	buf    Buffer
	voice  backend.OutputVoice

	bufferSize int
}

// setAltset applies an alternate setting change. Switching off empties the
// buffer and deactivates the voice; switching on activates it. Other
// values are rejected without touching the stream.
func (s *outStream) setAltset(alt uint8) error {
	switch alt {
	case AltsetOff:
		if err := s.buf.Init(s.bufferSize); err != nil {
			return err
		}
		s.voice.SetActive(false)
	case AltsetOn:
		s.voice.SetActive(true)
	default:
		return fmt.Errorf("output alt %d: %w", alt, pkg.ErrInvalidAltSetting)
	}
	s.altset = alt
	pkg.LogDebug(pkg.ComponentStream, "output altset", "alt", alt)
	return nil
}

// pushVolume propagates the current mute and channel levels to the voice.
func (s *outStream) pushVolume() {
	s.voice.SetVolume(s.mute, s.vol[0], s.vol[1])
}

// inStream is the guest capture direction: a host input voice buffered
// toward iso IN packets.
type inStream struct {
	altset uint8
	mute   bool
	vol    uint8
	buf    Buffer
	voice  backend.InputVoice

	bufferSize int
}

func (s *inStream) setAltset(alt uint8) error {
	switch alt {
	case AltsetOff:
		if err := s.buf.Init(s.bufferSize); err != nil {
			return err
		}
		s.voice.SetActive(false)
	case AltsetOn:
		s.voice.SetActive(true)
	default:
		return fmt.Errorf("input alt %d: %w", alt, pkg.ErrInvalidAltSetting)
	}
	s.altset = alt
	pkg.LogDebug(pkg.ComponentStream, "input altset", "alt", alt)
	return nil
}

func (s *inStream) pushVolume() {
	s.voice.SetVolume(s.mute, s.vol)
}
