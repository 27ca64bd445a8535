package audio

import (
	"github.com/ardnew/softaudio/pkg"
	"github.com/ardnew/softaudio/topology"
	"github.com/ardnew/softaudio/usb"
)

// Feature unit control selectors (UAC 1.0 Spec A.10.2).
const (
	MuteControl   = 0x01
	VolumeControl = 0x02
)

// Class-specific request codes (UAC 1.0 Spec A.9).
const (
	RequestSetCur = 0x01
	RequestGetCur = 0x81
	RequestSetMin = 0x02
	RequestGetMin = 0x82
	RequestSetMax = 0x03
	RequestGetMax = 0x83
	RequestSetRes = 0x04
	RequestGetRes = 0x84
)

// DefaultVolume is the power-on level of every channel, chosen so that it
// encodes to the 0 dB wire value.
const DefaultVolume = 240

// attributeID composes the dispatch key of a class request: control
// selector, request code, and the entity/interface identifier from wIndex.
func attributeID(selector, request uint8, entityInterface uint16) uint32 {
	return uint32(selector)<<24 | uint32(request)<<16 | uint32(entityInterface)
}

// encodeVolume maps a linear level (0..255) to the logarithmic wire value.
// Level 240 maps to 0x0000 (0 dB); the result wraps in 16 bits.
func encodeVolume(v uint8) uint16 {
	return uint16((int(v)*0x8800+127)/255 + 0x8000)
}

// decodeVolume maps a logarithmic wire value back to a linear level,
// clamped to 0..255. The bias subtraction wraps in 16 bits; the scaling
// must not.
func decodeVolume(code uint16) uint8 {
	w := code - 0x8000
	v := (int(w)*255 + 0x4400) / 0x8800
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// channelIndex extracts the channel number from the wValue low byte.
// Channel 1 is left (index 0), channel 2 is right (index 1). The master
// channel 0 wraps to 255 and is rejected along with anything past the
// second channel.
func channelIndex(value uint16) (int, bool) {
	cn := uint8(value) - 1
	if cn >= 2 {
		return 0, false
	}
	return int(cn), true
}

// getControl answers a class-interface GET request, writing the reply into
// out and returning its length. Unknown attributes return ErrStall.
func (d *Device) getControl(setup *usb.SetupPacket, out []byte) (int, error) {
	selector := uint8(setup.Value >> 8)

	switch attributeID(selector, setup.Request, setup.Index) {
	case attributeID(MuteControl, RequestGetCur, topology.OutputFeatureUnit):
		out[0] = 0
		if d.out.mute {
			out[0] = 1
		}
		return 1, nil

	case attributeID(VolumeControl, RequestGetCur, topology.OutputFeatureUnit):
		cn, ok := channelIndex(setup.Value)
		if !ok {
			break
		}
		code := encodeVolume(d.out.vol[cn])
		out[0] = uint8(code)
		out[1] = uint8(code >> 8)
		return 2, nil

	case attributeID(MuteControl, RequestGetCur, topology.InputFeatureUnit):
		out[0] = 0
		if d.in.mute {
			out[0] = 1
		}
		return 1, nil

	case attributeID(VolumeControl, RequestGetCur, topology.InputFeatureUnit):
		if _, ok := channelIndex(setup.Value); !ok {
			break
		}
		code := encodeVolume(d.in.vol)
		out[0] = uint8(code)
		out[1] = uint8(code >> 8)
		return 2, nil

	case attributeID(VolumeControl, RequestGetMin, topology.OutputFeatureUnit),
		attributeID(VolumeControl, RequestGetMin, topology.InputFeatureUnit):
		if _, ok := channelIndex(setup.Value); !ok {
			break
		}
		out[0] = 0x01
		out[1] = 0x80
		return 2, nil

	case attributeID(VolumeControl, RequestGetMax, topology.OutputFeatureUnit):
		if _, ok := channelIndex(setup.Value); !ok {
			break
		}
		out[0] = 0x00
		out[1] = 0x08
		return 2, nil

	case attributeID(VolumeControl, RequestGetMax, topology.InputFeatureUnit):
		if _, ok := channelIndex(setup.Value); !ok {
			break
		}
		out[0] = 0x00
		return 1, nil

	case attributeID(VolumeControl, RequestGetRes, topology.OutputFeatureUnit),
		attributeID(VolumeControl, RequestGetRes, topology.InputFeatureUnit):
		if _, ok := channelIndex(setup.Value); !ok {
			break
		}
		out[0] = 0x88
		out[1] = 0x00
		return 2, nil
	}

	return 0, pkg.ErrStall
}

// setControl applies a class-interface SET request from the data stage
// payload. Unknown attributes and malformed payloads return ErrStall.
func (d *Device) setControl(setup *usb.SetupPacket, data []byte) error {
	selector := uint8(setup.Value >> 8)

	switch attributeID(selector, setup.Request, setup.Index) {
	case attributeID(MuteControl, RequestSetCur, topology.OutputFeatureUnit):
		if len(data) < 1 {
			break
		}
		d.out.mute = data[0]&0x01 != 0
		d.out.pushVolume()
		return nil

	case attributeID(VolumeControl, RequestSetCur, topology.OutputFeatureUnit):
		cn, ok := channelIndex(setup.Value)
		if !ok || len(data) < 2 {
			break
		}
		code := uint16(data[0]) | uint16(data[1])<<8
		d.out.vol[cn] = decodeVolume(code)
		d.out.pushVolume()
		return nil

	case attributeID(MuteControl, RequestSetCur, topology.InputFeatureUnit):
		if len(data) < 1 {
			break
		}
		d.in.mute = data[0]&0x01 != 0
		d.in.pushVolume()
		return nil

	case attributeID(VolumeControl, RequestSetCur, topology.InputFeatureUnit):
		if _, ok := channelIndex(setup.Value); !ok || len(data) < 2 {
			break
		}
		code := uint16(data[0]) | uint16(data[1])<<8
		d.in.vol = decodeVolume(code)
		d.in.pushVolume()
		return nil
	}

	return pkg.ErrStall
}
