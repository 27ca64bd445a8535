// Package topology defines the fixed descriptor layout of the emulated
// audio device and answers the standard control requests against it.
//
// # Descriptor Layout
//
// The device presents the Basic Audio Device topology: an audio control
// interface carrying the terminal and feature unit graph, a stereo output
// streaming interface, and a mono input streaming interface. Each
// streaming interface has a zero-bandwidth alternate setting 0 and an
// operational alternate setting 1 with one isochronous endpoint.
//
// # Standard Requests
//
// Handler services GET_DESCRIPTOR, SET_ADDRESS, GET/SET_CONFIGURATION,
// GET/SET_INTERFACE, and GET_STATUS. Alternate setting changes are
// delegated to an AltController so the audio device can switch its
// streams on and off. Class-specific requests are left to the device.
package topology
