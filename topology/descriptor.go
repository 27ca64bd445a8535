package topology

import (
	"encoding/binary"
)

// USB Descriptor Types (USB 2.0 Spec Table 9-5).
const (
	DescriptorTypeDevice        = 0x01
	DescriptorTypeConfiguration = 0x02
	DescriptorTypeString        = 0x03
	DescriptorTypeInterface     = 0x04
	DescriptorTypeEndpoint      = 0x05
	DescriptorTypeCSInterface   = 0x24 // Class-specific interface
	DescriptorTypeCSEndpoint    = 0x25 // Class-specific endpoint
)

// USB Audio Class interface codes (UAC 1.0 Spec A.2, A.3).
const (
	ClassAudio             = 0x01
	SubclassAudioControl   = 0x01
	SubclassAudioStreaming = 0x02
)

// Descriptor subtypes for audio-control interfaces (UAC 1.0 Spec A.5).
const (
	ACHeader         = 0x01
	ACInputTerminal  = 0x02
	ACOutputTerminal = 0x03
	ACFeatureUnit    = 0x06
)

// Descriptor subtypes for audio-streaming interfaces and endpoints
// (UAC 1.0 Spec A.6, A.8).
const (
	ASGeneral    = 0x01
	ASFormatType = 0x02
	EPGeneral    = 0x01
)

// DeviceDescriptor represents a USB device descriptor (18 bytes).
type DeviceDescriptor struct {
	USBVersion        uint16 // USB specification version (BCD)
	DeviceClass       uint8  // Class code
	DeviceSubClass    uint8  // Subclass code
	DeviceProtocol    uint8  // Protocol code
	MaxPacketSize0    uint8  // Max packet size for EP0
	VendorID          uint16 // Vendor ID
	ProductID         uint16 // Product ID
	DeviceVersion     uint16 // Device release number (BCD)
	ManufacturerIndex uint8  // Index of manufacturer string
	ProductIndex      uint8  // Index of product string
	SerialNumberIndex uint8  // Index of serial number string
	NumConfigurations uint8  // Number of configurations
}

// DeviceDescriptorSize is the size of a device descriptor in bytes.
const DeviceDescriptorSize = 18

// MarshalTo serializes the device descriptor to buf.
// Returns the number of bytes written (always 18 if buf is large enough).
func (d *DeviceDescriptor) MarshalTo(buf []byte) int {
	if len(buf) < DeviceDescriptorSize {
		return 0
	}
	buf[0] = DeviceDescriptorSize
	buf[1] = DescriptorTypeDevice
	binary.LittleEndian.PutUint16(buf[2:4], d.USBVersion)
	buf[4] = d.DeviceClass
	buf[5] = d.DeviceSubClass
	buf[6] = d.DeviceProtocol
	buf[7] = d.MaxPacketSize0
	binary.LittleEndian.PutUint16(buf[8:10], d.VendorID)
	binary.LittleEndian.PutUint16(buf[10:12], d.ProductID)
	binary.LittleEndian.PutUint16(buf[12:14], d.DeviceVersion)
	buf[14] = d.ManufacturerIndex
	buf[15] = d.ProductIndex
	buf[16] = d.SerialNumberIndex
	buf[17] = d.NumConfigurations
	return DeviceDescriptorSize
}

// Configuration attribute bits.
const (
	ConfigAttrBusPowered  = 0x80 // Bus-powered (required)
	ConfigAttrSelfPowered = 0x40 // Self-powered
)

// ConfigurationDescriptorSize is the size of a configuration descriptor in bytes.
const ConfigurationDescriptorSize = 9

// InterfaceDescriptorSize is the size of an interface descriptor in bytes.
const InterfaceDescriptorSize = 9

// InterfaceDescriptor represents a USB interface descriptor (9 bytes).
type InterfaceDescriptor struct {
	InterfaceNumber   uint8 // Interface number
	AlternateSetting  uint8 // Alternate setting number
	NumEndpoints      uint8 // Number of endpoints (excluding EP0)
	InterfaceClass    uint8 // Class code
	InterfaceSubClass uint8 // Subclass code
	InterfaceProtocol uint8 // Protocol code
	InterfaceIndex    uint8 // Index of string descriptor
}

// MarshalTo serializes the interface descriptor to buf.
// Returns the number of bytes written (always 9 if buf is large enough).
func (d *InterfaceDescriptor) MarshalTo(buf []byte) int {
	if len(buf) < InterfaceDescriptorSize {
		return 0
	}
	buf[0] = InterfaceDescriptorSize
	buf[1] = DescriptorTypeInterface
	buf[2] = d.InterfaceNumber
	buf[3] = d.AlternateSetting
	buf[4] = d.NumEndpoints
	buf[5] = d.InterfaceClass
	buf[6] = d.InterfaceSubClass
	buf[7] = d.InterfaceProtocol
	buf[8] = d.InterfaceIndex
	return InterfaceDescriptorSize
}

// EndpointDescriptor represents a USB endpoint descriptor. Audio streaming
// endpoints use the 9-byte class variant with bRefresh and bSynchAddress.
type EndpointDescriptor struct {
	EndpointAddress uint8  // Address including direction bit
	Attributes      uint8  // Transfer type and iso sync/usage bits
	MaxPacketSize   uint16 // Maximum packet size
	Interval        uint8  // Polling interval in frames
	Audio           bool   // Emit the 9-byte audio-class variant
}

// Endpoint descriptor sizes in bytes.
const (
	EndpointDescriptorSize      = 7
	AudioEndpointDescriptorSize = 9
)

// MarshalTo serializes the endpoint descriptor to buf.
// Returns the number of bytes written.
func (d *EndpointDescriptor) MarshalTo(buf []byte) int {
	size := EndpointDescriptorSize
	if d.Audio {
		size = AudioEndpointDescriptorSize
	}
	if len(buf) < size {
		return 0
	}
	buf[0] = uint8(size)
	buf[1] = DescriptorTypeEndpoint
	buf[2] = d.EndpointAddress
	buf[3] = d.Attributes
	binary.LittleEndian.PutUint16(buf[4:6], d.MaxPacketSize)
	buf[6] = d.Interval
	if d.Audio {
		buf[7] = 0 // bRefresh
		buf[8] = 0 // bSynchAddress
	}
	return size
}

// StringDescriptorTo writes a USB string descriptor to buf.
// Returns the number of bytes written. The descriptor encodes the string
// as UTF-16LE. If buf is too small, returns 0.
func StringDescriptorTo(buf []byte, s string) int {
	runes := []rune(s)
	length := 2 + len(runes)*2
	if length > 255 {
		length = 255
		runes = runes[:(length-2)/2]
	}
	if len(buf) < length {
		return 0
	}
	buf[0] = uint8(length)
	buf[1] = DescriptorTypeString
	for i, r := range runes {
		binary.LittleEndian.PutUint16(buf[2+i*2:], uint16(r))
	}
	return length
}

// LanguageDescriptorTo writes the language ID string descriptor to buf.
// Returns the number of bytes written. If buf is too small, returns 0.
func LanguageDescriptorTo(buf []byte, langIDs ...uint16) int {
	length := 2 + len(langIDs)*2
	if len(buf) < length {
		return 0
	}
	buf[0] = uint8(length)
	buf[1] = DescriptorTypeString
	for i, id := range langIDs {
		binary.LittleEndian.PutUint16(buf[2+i*2:], id)
	}
	return length
}

// LangIDUSEnglish is the language ID for US English.
const LangIDUSEnglish = 0x0409
