package topology

import (
	"github.com/ardnew/softaudio/pkg"
	"github.com/ardnew/softaudio/usb"
)

// AltController receives alternate setting changes from SET_INTERFACE and
// answers GET_INTERFACE. The audio device implements it to switch its
// streams on and off.
type AltController interface {
	// SetInterface selects an alternate setting on an interface.
	SetInterface(iface, alt uint8) error

	// Interface returns the active alternate setting of an interface.
	Interface(iface uint8) (uint8, error)
}

// Composite (bmRequestType<<8 | bRequest) keys for standard requests.
const (
	deviceOutRequest    = (usb.RequestDirectionHostToDevice | usb.RequestTypeStandard | usb.RequestRecipientDevice) << 8
	deviceInRequest     = (usb.RequestDirectionDeviceToHost | usb.RequestTypeStandard | usb.RequestRecipientDevice) << 8
	interfaceOutRequest = (usb.RequestDirectionHostToDevice | usb.RequestTypeStandard | usb.RequestRecipientInterface) << 8
	interfaceInRequest  = (usb.RequestDirectionDeviceToHost | usb.RequestTypeStandard | usb.RequestRecipientInterface) << 8
)

// responseBufferSize is large enough for the full configuration descriptor
// and every string descriptor.
const responseBufferSize = 1024

// Handler answers the standard control requests for a fixed topology:
// descriptor reads, address and configuration management, and alternate
// setting selection, which it delegates to an AltController.
type Handler struct {
	topo *Topology
	ctrl AltController

	address uint8
	config  uint8
	buf     []byte
}

// NewHandler creates a standard-request handler for the given topology,
// delegating alternate setting changes to ctrl.
func NewHandler(topo *Topology, ctrl AltController) *Handler {
	return &Handler{
		topo: topo,
		ctrl: ctrl,
		buf:  make([]byte, responseBufferSize),
	}
}

// Reset returns the handler to its post-bus-reset state: address zero and
// deconfigured.
func (h *Handler) Reset() {
	h.address = 0
	h.config = 0
}

// Address returns the assigned device address.
func (h *Handler) Address() uint8 { return h.address }

// Configured reports whether a configuration has been selected.
func (h *Handler) Configured() bool { return h.config != 0 }

// HandleControl answers a standard control request, filling in the reply
// or status of p. It returns false when the request is not a standard
// request it recognizes, leaving p untouched for the class driver.
func (h *Handler) HandleControl(p *usb.Packet, setup *usb.SetupPacket) bool {
	switch setup.RequestKey() {
	case deviceInRequest | usb.RequestGetDescriptor:
		h.getDescriptor(p, setup)

	case deviceOutRequest | usb.RequestSetAddress:
		h.address = uint8(setup.Value)
		pkg.LogDebug(pkg.ComponentTopology, "set address", "address", h.address)

	case deviceInRequest | usb.RequestGetConfiguration:
		p.CopyIn([]byte{h.config})

	case deviceOutRequest | usb.RequestSetConfiguration:
		h.setConfiguration(p, uint8(setup.Value))

	case deviceInRequest | usb.RequestGetStatus:
		status := uint16(0)
		if h.topo.ConfigAttributes&ConfigAttrSelfPowered != 0 {
			status |= 1
		}
		p.CopyIn([]byte{uint8(status), uint8(status >> 8)})

	case interfaceInRequest | usb.RequestGetInterface:
		h.getInterface(p, setup)

	case interfaceOutRequest | usb.RequestSetInterface:
		h.setInterface(p, setup)

	default:
		return false
	}
	return true
}

func (h *Handler) getDescriptor(p *usb.Packet, setup *usb.SetupPacket) {
	var n int
	switch setup.DescriptorType() {
	case DescriptorTypeDevice:
		n = h.topo.MarshalDevice(h.buf)
	case DescriptorTypeConfiguration:
		n = h.topo.MarshalConfiguration(h.buf)
	case DescriptorTypeString:
		n = h.topo.MarshalString(h.buf, setup.DescriptorIndex())
	}
	if n == 0 {
		pkg.LogDebug(pkg.ComponentTopology, "unknown descriptor",
			"type", setup.DescriptorType(), "index", setup.DescriptorIndex())
		p.Stall()
		return
	}
	if n > int(setup.Length) {
		n = int(setup.Length)
	}
	p.CopyIn(h.buf[:n])
}

func (h *Handler) setConfiguration(p *usb.Packet, config uint8) {
	switch config {
	case 0:
		h.config = 0
	case ConfigValue:
		h.config = config
		// Selecting a configuration resets every interface to alternate
		// setting zero.
		for i := range h.topo.Interfaces {
			d := &h.topo.Interfaces[i].Descriptor
			if d.AlternateSetting != 0 {
				continue
			}
			if err := h.ctrl.SetInterface(d.InterfaceNumber, 0); err != nil {
				pkg.LogError(pkg.ComponentTopology, "reset interface",
					"interface", d.InterfaceNumber, "error", err)
			}
		}
	default:
		p.Stall()
		return
	}
	pkg.LogDebug(pkg.ComponentTopology, "set configuration", "config", config)
}

func (h *Handler) getInterface(p *usb.Packet, setup *usb.SetupPacket) {
	if h.config == 0 {
		p.Stall()
		return
	}
	alt, err := h.ctrl.Interface(setup.InterfaceNumber())
	if err != nil {
		p.Stall()
		return
	}
	p.CopyIn([]byte{alt})
}

func (h *Handler) setInterface(p *usb.Packet, setup *usb.SetupPacket) {
	iface := setup.InterfaceNumber()
	alt := uint8(setup.Value)
	if h.config == 0 || !h.topo.HasAltSetting(iface, alt) {
		p.Stall()
		return
	}
	if err := h.ctrl.SetInterface(iface, alt); err != nil {
		pkg.LogDebug(pkg.ComponentTopology, "set interface rejected",
			"interface", iface, "alt", alt, "error", err)
		p.Stall()
		return
	}
	pkg.LogDebug(pkg.ComponentTopology, "set interface",
		"interface", iface, "alt", alt)
}
