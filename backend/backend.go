package backend

// Format describes a PCM stream: little-endian signed integer samples.
type Format struct {
	SampleRate int // Frames per second
	Channels   int // Interleaved channels per frame
	Bits       int // Bits per sample
}

// BytesPerFrame returns the size of one interleaved frame in bytes.
func (f Format) BytesPerFrame() int {
	return f.Channels * f.Bits / 8
}

// BytesPerSecond returns the stream data rate in bytes per second.
func (f Format) BytesPerSecond() int {
	return f.SampleRate * f.BytesPerFrame()
}

// AvailFunc is invoked by the backend's pump with the number of bytes the
// host side can currently accept (output) or provide (input). The voice
// owner drains or fills its buffer from inside the callback.
type AvailFunc func(avail int)

// Backend is a host audio backend. A backend hands out voices bound to a
// fixed format; how the pump is driven (timer, host audio callback, test
// harness) is the backend's business.
type Backend interface {
	// OpenOutput creates a playback voice. onAvail is called from the
	// backend's pump when it can accept more data.
	OpenOutput(f Format, onAvail AvailFunc) (OutputVoice, error)

	// OpenInput creates a capture voice. onAvail is called from the
	// backend's pump when captured data is available.
	OpenInput(f Format, onAvail AvailFunc) (InputVoice, error)

	// Close releases the backend and all voices handed out by it.
	Close() error
}

// OutputVoice is a playback stream on the host side.
type OutputVoice interface {
	// Write submits interleaved frames to the host. It returns the number
	// of bytes consumed.
	Write(p []byte) (int, error)

	// SetActive starts or stops the stream.
	SetActive(active bool)

	// SetVolume applies mute and per-channel levels (0..255).
	SetVolume(mute bool, left, right uint8)

	// Close releases the voice.
	Close() error
}

// InputVoice is a capture stream on the host side.
type InputVoice interface {
	// Read fills p with captured interleaved frames. It returns the number
	// of bytes produced.
	Read(p []byte) (int, error)

	// SetActive starts or stops the stream.
	SetActive(active bool)

	// SetVolume applies mute and the capture level (0..255).
	SetVolume(mute bool, level uint8)

	// Close releases the voice.
	Close() error
}
