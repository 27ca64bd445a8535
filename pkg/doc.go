// Package pkg provides shared utilities for the softaudio device model.
//
// This package contains common functionality used across the wire,
// topology, and audio packages, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for protocol and resource errors
//   - Component identifiers for log filtering
//
// # Logging
//
// The logging subsystem wraps [log/slog] with device-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentStream, "interface enabled", "altset", 1)
//
// # Errors
//
// Common errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrStall) {
//	    // Answer the transfer with a STALL handshake
//	}
package pkg
