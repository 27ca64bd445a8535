// Package usb provides the wire-level USB types shared by the softaudio
// device model: SETUP packet parsing and construction, token packets with
// handshake status, and the [Model] interface a VM's USB layer drives.
//
// # Zero-Allocation Design
//
// Serialization uses MarshalTo(buf) and parse functions take output
// parameters, so the hot control and data paths allocate nothing.
package usb
