package usb

import "fmt"

// Token identifies the token phase of a USB transaction.
type Token uint8

// Token values.
const (
	TokenSetup Token = iota // SETUP token (control transfers)
	TokenOut                // OUT token (host to device)
	TokenIn                 // IN token (device to host)
)

// String returns a human-readable token name.
func (t Token) String() string {
	switch t {
	case TokenSetup:
		return "SETUP"
	case TokenOut:
		return "OUT"
	case TokenIn:
		return "IN"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Status represents the handshake result of a USB transaction.
type Status int

// Status values.
const (
	StatusSuccess Status = iota // Transaction completed
	StatusStall                 // Endpoint answered STALL
	StatusNAK                   // Endpoint answered NAK
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusStall:
		return "stall"
	case StatusNAK:
		return "nak"
	default:
		return "unknown"
	}
}

// Endpoint directions (bit 7 of the endpoint address).
const (
	EndpointDirectionOut = 0x00 // Host to device
	EndpointDirectionIn  = 0x80 // Device to host
)

// EndpointNumber extracts the endpoint number (0-15) from an address.
func EndpointNumber(address uint8) uint8 {
	return address & 0x0F
}

// Packet represents one USB transaction as seen by an emulated device:
// a token, a target endpoint, and a data buffer.
//
// For OUT tokens, Data holds the payload from the host. For IN tokens,
// Data provides the space the host asked to fill. ActualLength records
// how many bytes the device consumed or produced.
type Packet struct {
	Token    Token  // Transaction token
	Endpoint uint8  // Endpoint number (direction implied by token)
	Data     []byte // Payload (OUT) or receive space (IN)

	ActualLength int    // Bytes actually transferred
	Status       Status // Handshake result
}

// Stall marks the packet as answered with a STALL handshake.
func (p *Packet) Stall() {
	p.Status = StatusStall
}

// CopyIn copies device data into the packet's receive space and records
// the transferred length. Returns the number of bytes copied.
func (p *Packet) CopyIn(data []byte) int {
	n := copy(p.Data, data)
	p.ActualLength = n
	return n
}

// String returns a human-readable representation of the packet.
func (p *Packet) String() string {
	return fmt.Sprintf("%s ep=%d len=%d actual=%d status=%s",
		p.Token, p.Endpoint, len(p.Data), p.ActualLength, p.Status)
}
