package pkg

import "errors"

// Errors shared across the emulated audio device.
var (
	// ErrStall indicates a control or data transfer that must be answered
	// with a USB STALL handshake.
	ErrStall = errors.New("endpoint stalled")

	// ErrOverrun indicates the guest produced data faster than the backend
	// drains it (stream buffer full).
	ErrOverrun = errors.New("data overrun")

	// ErrUnderrun indicates the guest requested data faster than the backend
	// supplies it (stream buffer empty).
	ErrUnderrun = errors.New("data underrun")

	// ErrInvalidRequest indicates an invalid or unsupported request.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidAltSetting indicates a SET_INTERFACE with an alternate
	// setting the interface does not define.
	ErrInvalidAltSetting = errors.New("invalid alternate setting")

	// ErrInvalidEndpoint indicates an invalid endpoint address.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrInvalidState indicates an operation in the wrong device state,
	// such as resizing a stream buffer while its direction is active.
	ErrInvalidState = errors.New("invalid device state")

	// ErrNoMemory indicates a failed buffer allocation. This is fatal for
	// the device; there is no recovery path.
	ErrNoMemory = errors.New("insufficient memory")

	// ErrBufferTooSmall indicates the provided buffer is too small.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrSetupPacketTooShort indicates the setup packet data is too short.
	ErrSetupPacketTooShort = errors.New("setup packet too short")

	// ErrNotConfigured indicates the device or voice is not realized yet.
	ErrNotConfigured = errors.New("device not configured")

	// ErrClosed indicates use of a backend voice after Close.
	ErrClosed = errors.New("voice closed")
)
