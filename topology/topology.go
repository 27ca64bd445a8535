package topology

// A Basic Audio Device uses these specific values (UAC 1.0 Spec 3.2).
const (
	PacketSize     = 192   // Isochronous packet size in bytes
	SampleRate     = 48000 // Sample rate in Hz
	PacketInterval = 1     // Packet interval in frames
)

// Device identification.
const (
	VendorID  = 0x46F4
	ProductID = 0x0003
)

// ConfigValue is the one and only configuration value.
const ConfigValue = 1

// Interface numbers.
const (
	InterfaceControl      = 0 // Audio control interface
	InterfaceOutputStream = 1 // Streaming interface for guest playback
	InterfaceInputStream  = 2 // Streaming interface for guest capture
)

// Entity/interface identifiers carried in the wIndex field of class
// requests: feature unit ID in the high byte, interface number in the low.
const (
	OutputFeatureUnit = 0x0200
	InputFeatureUnit  = 0x0500
)

// String descriptor indices.
const (
	StringManufacturer = iota + 1
	StringProduct
	StringSerialNumber
	StringConfig
	StringAudioControl
	StringInputTerminal
	StringFeatureUnit
	StringOutputTerminal
	StringNullStream
	StringRealStream
	StringMicStream
)

// Endpoint describes one endpoint of an alternate setting, including its
// class-specific descriptor bytes.
type Endpoint struct {
	Descriptor EndpointDescriptor
	Extra      []byte
}

// Interface describes one (interface number, alternate setting) variant,
// including its class-specific descriptor bytes.
type Interface struct {
	Descriptor InterfaceDescriptor
	Extra      [][]byte
	Endpoints  []Endpoint
}

// Topology is the immutable descriptor layout of the audio device. It is
// built once at device realization and treated as read-only configuration.
type Topology struct {
	Device           DeviceDescriptor
	ConfigAttributes uint8
	MaxPower         uint8
	Interfaces       []Interface

	strings []string
}

// New constructs the fixed topology of the Basic Audio Device: one audio
// control interface with the terminal/feature-unit graph, one stereo output
// streaming interface, and one mono input streaming interface, each
// streaming interface with alternate settings 0 (off) and 1 (on).
func New() *Topology {
	return &Topology{
		Device: DeviceDescriptor{
			USBVersion:        0x0100,
			MaxPacketSize0:    64,
			VendorID:          VendorID,
			ProductID:         ProductID,
			ManufacturerIndex: StringManufacturer,
			ProductIndex:      StringProduct,
			SerialNumberIndex: StringSerialNumber,
			NumConfigurations: 1,
		},
		ConfigAttributes: ConfigAttrBusPowered | ConfigAttrSelfPowered,
		MaxPower:         0x32,
		Interfaces: []Interface{
			{
				Descriptor: InterfaceDescriptor{
					InterfaceNumber:   InterfaceControl,
					InterfaceClass:    ClassAudio,
					InterfaceSubClass: SubclassAudioControl,
					InterfaceIndex:    StringAudioControl,
				},
				Extra: [][]byte{
					{
						// Class-specific AC interface header descriptor
						0x0A,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ACHeader,                  //  u8  bDescriptorSubtype
						0x00, 0x01,                // u16  bcdADC (1.00)
						0x41, 0x00, // u16  wTotalLength
						0x02, //  u8  bInCollection
						0x01, //  u8  baInterfaceNr
						0x02, //  u8  baInterfaceNr2
					},
					{
						// Generic stereo input terminal ID1 descriptor
						0x0C,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ACInputTerminal,           //  u8  bDescriptorSubtype
						0x01,                      //  u8  bTerminalID
						0x01, 0x01,                // u16  wTerminalType (USB streaming)
						0x00,       //  u8  bAssocTerminal
						0x02,       //  u8  bNrChannels
						0x03, 0x00, // u16  wChannelConfig (L+R)
						0x00,                //  u8  iChannelNames
						StringInputTerminal, //  u8  iTerminal
					},
					{
						// Stereo feature unit ID2 descriptor
						0x0D,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ACFeatureUnit,             //  u8  bDescriptorSubtype
						0x02,                      //  u8  bUnitID
						0x01,                      //  u8  bSourceID
						0x02,                      //  u8  bControlSize
						0x01, 0x00,                // u16  bmaControls(0) (mute)
						0x02, 0x00, // u16  bmaControls(1) (volume)
						0x02, 0x00, // u16  bmaControls(2) (volume)
						StringFeatureUnit, //  u8  iFeature
					},
					{
						// Headphone output terminal ID3 descriptor
						0x09,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ACOutputTerminal,          //  u8  bDescriptorSubtype
						0x03,                      //  u8  bUnitID
						0x01, 0x03,                // u16  wTerminalType (speaker)
						0x00,                 //  u8  bAssocTerminal
						0x02,                 //  u8  bSourceID
						StringOutputTerminal, //  u8  iTerminal
					},
					{
						// Microphone input terminal ID4 descriptor
						0x0C,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ACInputTerminal,           //  u8  bDescriptorSubtype
						0x04,                      //  u8  bTerminalID
						0x01, 0x02,                // u16  wTerminalType (microphone)
						0x00,       //  u8  bAssocTerminal
						0x01,       //  u8  bNrChannels
						0x00, 0x00, // u16  wChannelConfig (mono)
						0x00, //  u8  iChannelNames
						0x00, //  u8  iTerminal
					},
					{
						// Microphone output terminal ID6 descriptor
						0x09,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ACOutputTerminal,          //  u8  bDescriptorSubtype
						0x06,                      //  u8  bUnitID
						0x01, 0x01,                // u16  wTerminalType (USB streaming)
						0x00, //  u8  bAssocTerminal
						0x04, //  u8  bSourceID
						0x00, //  u8  iTerminal
					},
				},
			},
			{
				// Output stream disabled (zero-bandwidth alternate setting)
				Descriptor: InterfaceDescriptor{
					InterfaceNumber:   InterfaceOutputStream,
					AlternateSetting:  0,
					InterfaceClass:    ClassAudio,
					InterfaceSubClass: SubclassAudioStreaming,
					InterfaceIndex:    StringNullStream,
				},
			},
			{
				// Output stream enabled: 48 kHz stereo S16LE
				Descriptor: InterfaceDescriptor{
					InterfaceNumber:   InterfaceOutputStream,
					AlternateSetting:  1,
					NumEndpoints:      1,
					InterfaceClass:    ClassAudio,
					InterfaceSubClass: SubclassAudioStreaming,
					InterfaceIndex:    StringRealStream,
				},
				Extra: [][]byte{
					{
						// Class-specific AS general interface descriptor
						0x07,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ASGeneral,                 //  u8  bDescriptorSubtype
						0x01,                      //  u8  bTerminalLink
						0x00,                      //  u8  bDelay
						0x01, 0x00,                // u16  wFormatTag (PCM)
					},
					{
						// Type I format type descriptor
						0x0B,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ASFormatType,              //  u8  bDescriptorSubtype
						0x01,                      //  u8  bFormatType
						0x02,                      //  u8  bNrChannels
						0x02,                      //  u8  bSubFrameSize
						0x10,                      //  u8  bBitResolution
						0x01,                      //  u8  bSamFreqType
						0x80, 0xBB, 0x00,          // u24  tSamFreq (48000)
					},
				},
				Endpoints: []Endpoint{
					{
						Descriptor: EndpointDescriptor{
							EndpointAddress: 0x01, // EP1 OUT
							Attributes:      0x0D, // Isochronous, synchronous
							MaxPacketSize:   PacketSize,
							Interval:        PacketInterval,
							Audio:           true,
						},
						Extra: []byte{
							// Class-specific AS data endpoint descriptor
							0x07,                     //  u8  bLength
							DescriptorTypeCSEndpoint, //  u8  bDescriptorType
							EPGeneral,                //  u8  bDescriptorSubtype
							0x00,                     //  u8  bmAttributes
							0x00,                     //  u8  bLockDelayUnits
							0x00, 0x00,               // u16  wLockDelay
						},
					},
				},
			},
			{
				// Input stream disabled (zero-bandwidth alternate setting)
				Descriptor: InterfaceDescriptor{
					InterfaceNumber:   InterfaceInputStream,
					AlternateSetting:  0,
					InterfaceClass:    ClassAudio,
					InterfaceSubClass: SubclassAudioStreaming,
					InterfaceIndex:    StringNullStream,
				},
			},
			{
				// Input stream enabled: 48 kHz mono S16LE
				Descriptor: InterfaceDescriptor{
					InterfaceNumber:   InterfaceInputStream,
					AlternateSetting:  1,
					NumEndpoints:      1,
					InterfaceClass:    ClassAudio,
					InterfaceSubClass: SubclassAudioStreaming,
					InterfaceIndex:    StringMicStream,
				},
				Extra: [][]byte{
					{
						// Class-specific AS general interface descriptor
						0x07,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ASGeneral,                 //  u8  bDescriptorSubtype
						0x06,                      //  u8  bTerminalLink
						0x00,                      //  u8  bDelay
						0x01, 0x00,                // u16  wFormatTag (PCM)
					},
					{
						// Type I format type descriptor
						0x0B,                      //  u8  bLength
						DescriptorTypeCSInterface, //  u8  bDescriptorType
						ASFormatType,              //  u8  bDescriptorSubtype
						0x01,                      //  u8  bFormatType
						0x01,                      //  u8  bNrChannels
						0x02,                      //  u8  bSubFrameSize
						0x10,                      //  u8  bBitResolution
						0x01,                      //  u8  bSamFreqType
						0x80, 0xBB, 0x00,          // u24  tSamFreq (48000)
					},
				},
				Endpoints: []Endpoint{
					{
						Descriptor: EndpointDescriptor{
							EndpointAddress: 0x81, // EP1 IN
							Attributes:      0x01, // Isochronous
							MaxPacketSize:   PacketSize,
							Interval:        PacketInterval,
						},
						Extra: []byte{
							// Class-specific AS data endpoint descriptor
							0x07,                     //  u8  bLength
							DescriptorTypeCSEndpoint, //  u8  bDescriptorType
							EPGeneral,                //  u8  bDescriptorSubtype
							0x00,                     //  u8  bmAttributes
							0x00,                     //  u8  bLockDelayUnits
							0x00, 0x00,               // u16  wLockDelay
						},
					},
				},
			},
		},
		strings: []string{
			StringManufacturer:   "softaudio",
			StringProduct:        "softaudio USB Audio",
			StringSerialNumber:   "1",
			StringConfig:         "Audio Configuration",
			StringAudioControl:   "Audio Device",
			StringInputTerminal:  "Audio Output Pipe",
			StringFeatureUnit:    "Audio Output Volume Control",
			StringOutputTerminal: "Audio Output Terminal",
			StringNullStream:     "Audio Output - Disabled",
			StringRealStream:     "Audio Output - 48 kHz Stereo",
			StringMicStream:      "Audio Input - 48 kHz Mono",
		},
	}
}

// NumInterfaces returns the number of distinct interface numbers.
func (t *Topology) NumInterfaces() int {
	seen := make(map[uint8]bool)
	for i := range t.Interfaces {
		seen[t.Interfaces[i].Descriptor.InterfaceNumber] = true
	}
	return len(seen)
}

// HasAltSetting reports whether the given (interface, alternate setting)
// pair exists in the topology.
func (t *Topology) HasAltSetting(iface, alt uint8) bool {
	for i := range t.Interfaces {
		d := &t.Interfaces[i].Descriptor
		if d.InterfaceNumber == iface && d.AlternateSetting == alt {
			return true
		}
	}
	return false
}

// totalLength returns the wTotalLength of the configuration descriptor,
// including all class-specific descriptor bytes.
func (t *Topology) totalLength() uint16 {
	length := uint16(ConfigurationDescriptorSize)
	for i := range t.Interfaces {
		iface := &t.Interfaces[i]
		length += InterfaceDescriptorSize
		for _, extra := range iface.Extra {
			length += uint16(len(extra))
		}
		for j := range iface.Endpoints {
			ep := &iface.Endpoints[j]
			if ep.Descriptor.Audio {
				length += AudioEndpointDescriptorSize
			} else {
				length += EndpointDescriptorSize
			}
			length += uint16(len(ep.Extra))
		}
	}
	return length
}

// MarshalDevice writes the device descriptor to buf.
// Returns the number of bytes written.
func (t *Topology) MarshalDevice(buf []byte) int {
	return t.Device.MarshalTo(buf)
}

// MarshalConfiguration writes the full configuration descriptor, including
// all interfaces, class-specific descriptors, and endpoints, to buf.
// Returns the number of bytes written, or 0 if buf is too small.
func (t *Topology) MarshalConfiguration(buf []byte) int {
	total := t.totalLength()
	if len(buf) < int(total) {
		return 0
	}

	buf[0] = ConfigurationDescriptorSize
	buf[1] = DescriptorTypeConfiguration
	buf[2] = uint8(total)
	buf[3] = uint8(total >> 8)
	buf[4] = uint8(t.NumInterfaces())
	buf[5] = ConfigValue
	buf[6] = StringConfig
	buf[7] = t.ConfigAttributes
	buf[8] = t.MaxPower
	offset := ConfigurationDescriptorSize

	for i := range t.Interfaces {
		iface := &t.Interfaces[i]
		offset += iface.Descriptor.MarshalTo(buf[offset:])
		for _, extra := range iface.Extra {
			offset += copy(buf[offset:], extra)
		}
		for j := range iface.Endpoints {
			ep := &iface.Endpoints[j]
			offset += ep.Descriptor.MarshalTo(buf[offset:])
			offset += copy(buf[offset:], ep.Extra)
		}
	}

	return offset
}

// MarshalString writes the string descriptor with the given index to buf.
// Index 0 is the language ID table. Returns the number of bytes written,
// or 0 for an unknown index.
func (t *Topology) MarshalString(buf []byte, index uint8) int {
	if index == 0 {
		return LanguageDescriptorTo(buf, LangIDUSEnglish)
	}
	if int(index) >= len(t.strings) || t.strings[index] == "" {
		return 0
	}
	return StringDescriptorTo(buf, t.strings[index])
}
