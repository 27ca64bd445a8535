package audio

import (
	"fmt"

	"github.com/ardnew/softaudio/backend"
	"github.com/ardnew/softaudio/metrics"
	"github.com/ardnew/softaudio/pkg"
	"github.com/ardnew/softaudio/topology"
	"github.com/ardnew/softaudio/usb"
)

// Device is the emulated audio device: a stereo playback stream and a mono
// capture stream bridged to a host backend. It implements usb.Model for
// the machine's USB layer and topology.AltController for the standard
// request handler.
type Device struct {
	topo    *topology.Topology
	std     *topology.Handler
	backend backend.Backend

	out outStream
	in  inStream

	// ctrlReply is scratch space for class GET replies, at most 2 bytes.
	ctrlReply [2]byte

	realized bool
}

// Compile-time interface checks.
var (
	_ usb.Model              = (*Device)(nil)
	_ topology.AltController = (*Device)(nil)
)

// New creates an unrealized device bridged to be. bufferPackets sizes each
// direction's ring in packets; zero selects the default.
func New(be backend.Backend, bufferPackets int) *Device {
	if bufferPackets <= 0 {
		bufferPackets = DefaultBufferPackets
	}
	d := &Device{
		topo:    topology.New(),
		backend: be,
	}
	d.std = topology.NewHandler(d.topo, d)
	d.out.bufferSize = bufferPackets * PacketSize
	d.in.bufferSize = bufferPackets * PacketSize
	return d
}

// Topology returns the device's descriptor layout.
func (d *Device) Topology() *topology.Topology {
	return d.topo
}

// Realize opens the backend voices, sets both streams to their power-on
// state, and pushes the initial volume. An error is fatal for the device.
func (d *Device) Realize() error {
	var err error

	d.out.voice, err = d.backend.OpenOutput(outputFormat, d.outputAvail)
	if err != nil {
		return fmt.Errorf("open output voice: %w", err)
	}
	d.in.voice, err = d.backend.OpenInput(inputFormat, d.inputAvail)
	if err != nil {
		d.out.voice.Close()
		return fmt.Errorf("open input voice: %w", err)
	}

	d.out.mute = false
	d.out.vol = [2]uint8{DefaultVolume, DefaultVolume}
	d.in.mute = false
	d.in.vol = DefaultVolume

	if err := d.out.setAltset(AltsetOff); err != nil {
		return err
	}
	if err := d.in.setAltset(AltsetOff); err != nil {
		return err
	}
	d.out.pushVolume()
	d.in.pushVolume()

	d.realized = true
	pkg.LogInfo(pkg.ComponentDevice, "realized",
		"buffer", d.out.buf.Size(), "packet", PacketSize)
	return nil
}

// HandleReset forces both streams off, as a bus reset leaves every
// interface at alternate setting zero.
func (d *Device) HandleReset() {
	pkg.LogDebug(pkg.ComponentDevice, "bus reset")
	if err := d.out.setAltset(AltsetOff); err != nil {
		pkg.LogError(pkg.ComponentDevice, "reset output", "error", err)
	}
	if err := d.in.setAltset(AltsetOff); err != nil {
		pkg.LogError(pkg.ComponentDevice, "reset input", "error", err)
	}
	d.std.Reset()
}

// HandleControl processes a control transfer. Standard requests are
// answered from the topology; class-interface requests drive the mute and
// volume controls. Everything else stalls.
func (d *Device) HandleControl(p *usb.Packet, setup *usb.SetupPacket, data []byte) {
	if d.std.HandleControl(p, setup) {
		return
	}

	switch setup.RequestKey() & 0xFF00 {
	case usb.ClassInterfaceRequest:
		n, err := d.getControl(setup, d.ctrlReply[:])
		if err != nil {
			pkg.LogDebug(pkg.ComponentControl, "get rejected", "setup", setup)
			metrics.ControlStalls.Inc()
			p.Stall()
			return
		}
		if n > int(setup.Length) {
			n = int(setup.Length)
		}
		p.CopyIn(d.ctrlReply[:n])

	case usb.ClassInterfaceOutRequest:
		if err := d.setControl(setup, data); err != nil {
			pkg.LogDebug(pkg.ComponentControl, "set rejected", "setup", setup)
			metrics.ControlStalls.Inc()
			p.Stall()
		}

	default:
		pkg.LogDebug(pkg.ComponentControl, "unhandled request", "setup", setup)
		metrics.ControlStalls.Inc()
		p.Stall()
	}
}

// HandleData processes an isochronous transfer on endpoint 1. OUT packets
// feed the playback ring; a full ring drops the packet but still reports
// success to the guest. IN packets drain the capture ring and stall on
// underrun. Any other endpoint or token stalls.
func (d *Device) HandleData(p *usb.Packet) {
	switch {
	case p.Token == usb.TokenOut && p.Endpoint == 1 && d.out.altset != AltsetOff:
		// The guest sees success either way; a drop only shows in the
		// accepted length.
		n := d.out.buf.Put(p.Data)
		if n == 0 {
			pkg.LogDebug(pkg.ComponentStream, "output overrun",
				"len", len(p.Data), "used", d.out.buf.Used())
			metrics.OutputBytesDropped.Add(float64(len(p.Data)))
		} else {
			metrics.OutputBytesAccepted.Add(float64(n))
		}
		p.ActualLength = n

	case p.Token == usb.TokenIn && p.Endpoint == 1 && d.in.altset != AltsetOff:
		n := len(p.Data)
		if n > PacketSize {
			n = PacketSize
		}
		data := d.in.buf.Get(n)
		if data == nil {
			metrics.InputUnderruns.Inc()
			p.Stall()
			return
		}
		p.CopyIn(data)

	default:
		pkg.LogDebug(pkg.ComponentStream, "unexpected transfer", "packet", p)
		p.Stall()
	}
}

// Destroy stops both streams and releases the voices. The backend itself
// belongs to the caller.
func (d *Device) Destroy() {
	if !d.realized {
		return
	}
	if err := d.out.setAltset(AltsetOff); err != nil {
		pkg.LogError(pkg.ComponentDevice, "destroy output", "error", err)
	}
	if err := d.in.setAltset(AltsetOff); err != nil {
		pkg.LogError(pkg.ComponentDevice, "destroy input", "error", err)
	}
	d.out.voice.Close()
	d.in.voice.Close()
	d.out.buf.Fini()
	d.in.buf.Fini()
	d.realized = false
	pkg.LogInfo(pkg.ComponentDevice, "destroyed")
}

// SetInterface implements topology.AltController: alternate setting
// changes on the streaming interfaces switch the streams on and off.
func (d *Device) SetInterface(iface, alt uint8) error {
	switch iface {
	case topology.InterfaceControl:
		if alt != 0 {
			return pkg.ErrInvalidAltSetting
		}
		return nil
	case topology.InterfaceOutputStream:
		return d.out.setAltset(alt)
	case topology.InterfaceInputStream:
		return d.in.setAltset(alt)
	}
	return pkg.ErrInvalidRequest
}

// Interface implements topology.AltController.
func (d *Device) Interface(iface uint8) (uint8, error) {
	switch iface {
	case topology.InterfaceControl:
		return 0, nil
	case topology.InterfaceOutputStream:
		return d.out.altset, nil
	case topology.InterfaceInputStream:
		return d.in.altset, nil
	}
	return 0, pkg.ErrInvalidRequest
}

// outputAvail is the backend pump's playback callback: drain whole packets
// from the ring while the host can take them.
func (d *Device) outputAvail(avail int) {
	metrics.PumpCycles.Inc()
	for avail >= PacketSize {
		data := d.out.buf.Get(PacketSize)
		if data == nil {
			break
		}
		n, err := d.out.voice.Write(data)
		if err != nil {
			pkg.LogError(pkg.ComponentBackend, "write", "error", err)
			break
		}
		metrics.OutputBytesPlayed.Add(float64(n))
		if n < len(data) {
			pkg.LogDebug(pkg.ComponentBackend, "short write",
				"want", len(data), "got", n)
			break
		}
		avail -= PacketSize
	}
}

// inputAvail is the backend pump's capture callback: fill whole packets
// into the ring while the host has more than a packet to give.
func (d *Device) inputAvail(avail int) {
	metrics.PumpCycles.Inc()
	for avail > PacketSize {
		data := d.in.buf.Alloc(PacketSize)
		if data == nil {
			break
		}
		n, err := d.in.voice.Read(data)
		if err != nil {
			pkg.LogError(pkg.ComponentBackend, "read", "error", err)
			break
		}
		metrics.InputBytesCaptured.Add(float64(n))
		avail -= PacketSize
	}
}
