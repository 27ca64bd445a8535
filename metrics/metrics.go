// Package metrics exposes Prometheus counters for the streaming data path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Output (guest playback) counters.
	OutputBytesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "softaudio",
		Subsystem: "stream",
		Name:      "output_bytes_accepted_total",
		Help:      "Playback bytes accepted into the output buffer",
	})

	OutputBytesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "softaudio",
		Subsystem: "stream",
		Name:      "output_bytes_dropped_total",
		Help:      "Playback bytes dropped because the output buffer was full",
	})

	OutputBytesPlayed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "softaudio",
		Subsystem: "stream",
		Name:      "output_bytes_played_total",
		Help:      "Playback bytes drained to the host backend",
	})

	// Input (guest capture) counters.
	InputBytesCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "softaudio",
		Subsystem: "stream",
		Name:      "input_bytes_captured_total",
		Help:      "Capture bytes filled from the host backend",
	})

	InputUnderruns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "softaudio",
		Subsystem: "stream",
		Name:      "input_underruns_total",
		Help:      "IN transfers stalled because the input buffer was empty",
	})

	// Control plane counters.
	ControlStalls = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "softaudio",
		Subsystem: "control",
		Name:      "stalls_total",
		Help:      "Control transfers answered with a STALL handshake",
	})

	PumpCycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "softaudio",
		Subsystem: "backend",
		Name:      "pump_cycles_total",
		Help:      "Backend pump iterations",
	})
)
