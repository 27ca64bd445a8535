// Package audio implements the emulated USB audio device: a stereo
// playback stream and a mono capture stream at 48 kHz S16LE, bridged to a
// host backend through per-direction packet rings.
//
// # Data Path
//
// The guest moves audio in fixed 192-byte isochronous packets on endpoint
// 1. OUT packets are buffered in the playback ring and drained to the host
// voice by the backend pump; the pump fills the capture ring, which IN
// packets drain. A full playback ring drops packets silently so the guest
// stream keeps its timing; an empty capture ring stalls the IN transfer.
//
// # Control Plane
//
// Standard requests are answered by the topology layer. Class-interface
// requests address the mute and volume controls of the two feature units;
// volume moves on the wire in a logarithmic 16-bit encoding and internally
// as a linear 0..255 level.
//
// All methods are driven from the machine's serialized event loop and
// perform no locking of their own.
package audio
