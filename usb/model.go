package usb

// Model is the callback surface a virtual machine's USB layer drives on an
// emulated device. All five operations are invoked from the VM's serialized
// I/O event loop; implementations need no internal locking.
type Model interface {
	// Realize allocates device resources and brings the model into its
	// initial state. An error here is fatal for the device.
	Realize() error

	// HandleReset handles a bus reset.
	HandleReset()

	// HandleControl processes a control transfer. For host-to-device
	// requests, data holds the data stage payload. For device-to-host
	// requests, the reply is copied into p and p.ActualLength set.
	// Unsupported requests answer with p.Stall().
	HandleControl(p *Packet, setup *SetupPacket, data []byte)

	// HandleData processes a non-control (IN or OUT token) transfer.
	HandleData(p *Packet)

	// Destroy tears down the device and releases its resources.
	Destroy()
}
