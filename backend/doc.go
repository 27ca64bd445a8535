// Package backend defines the host audio contract of the emulated device
// and two implementations: a null backend that discards playback and
// captures silence, and a WAV backend that encodes playback into a file
// and decodes capture from one.
//
// A backend hands out one voice per direction, bound to a fixed PCM
// format. Data moves through a pump: the backend invokes each active
// voice's callback with the space it can transfer, and the callback
// drains or fills the device's ring in whole packets.
package backend
