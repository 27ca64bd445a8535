package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ardnew/softaudio/audio"
	"github.com/ardnew/softaudio/backend"
	"github.com/ardnew/softaudio/config"
	"github.com/ardnew/softaudio/pkg"
	"github.com/ardnew/softaudio/topology"
	"github.com/ardnew/softaudio/usb"
)

// pump is the backend side the demo drives by hand; both concrete
// backends expose it.
type pump interface {
	backend.Backend
	Pump(avail int)
}

type runOptions struct {
	duration time.Duration
	toneHz   float64
}

func bindRunFlags(fs *pflag.FlagSet, opts *runOptions) {
	fs.DurationVarP(&opts.duration, "duration", "d", 3*time.Second, "how long to stream")
	fs.Float64VarP(&opts.toneHz, "tone", "t", 440, "playback tone frequency in Hz")
}

func runCmd(configPath *string) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Realize the device and stream a tone through it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if *configPath != "" {
				var err error
				if cfg, err = config.Load(*configPath); err != nil {
					return err
				}
			}
			return run(cfg, opts)
		},
	}
	bindRunFlags(cmd.Flags(), &opts)
	return cmd
}

func applyLogging(cfg config.Config) {
	switch cfg.LogLevel {
	case "debug":
		pkg.SetLogLevel(slog.LevelDebug)
	case "warn":
		pkg.SetLogLevel(slog.LevelWarn)
	case "error":
		pkg.SetLogLevel(slog.LevelError)
	default:
		pkg.SetLogLevel(slog.LevelInfo)
	}
	if cfg.LogFormat == "json" {
		pkg.SetLogFormat(pkg.LogFormatJSON)
	}
}

func openBackend(cfg config.Config) (pump, error) {
	if cfg.Backend != config.BackendWAV {
		return backend.NewNull(), nil
	}

	var outW *os.File
	var inR *os.File
	var err error
	if cfg.OutputWAV != "" {
		if outW, err = os.Create(cfg.OutputWAV); err != nil {
			return nil, fmt.Errorf("create output wav: %w", err)
		}
	}
	if cfg.InputWAV != "" {
		if inR, err = os.Open(cfg.InputWAV); err != nil {
			return nil, fmt.Errorf("open input wav: %w", err)
		}
	}
	return backend.NewWAV(outW, inR), nil
}

func run(cfg config.Config, opts runOptions) error {
	applyLogging(cfg)

	be, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer be.Close()

	dev := audio.New(be, cfg.BufferPackets)
	if err := dev.Realize(); err != nil {
		return err
	}
	defer dev.Destroy()

	if err := enumerate(dev); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	// One tick is 10 ms of audio: 10 packets each way, then a pump cycle
	// with matching space on the host side.
	const packetsPerTick = 10
	ticker := time.NewTicker(packetsPerTick * time.Millisecond)
	defer ticker.Stop()
	deadline := time.NewTimer(opts.duration)
	defer deadline.Stop()

	tone := newToneGen(opts.toneHz)
	inPacket := make([]byte, audio.PacketSize)
	captured := 0

	for {
		select {
		case <-sig:
			pkg.LogInfo(pkg.ComponentDevice, "interrupted")
			return nil
		case <-deadline.C:
			pkg.LogInfo(pkg.ComponentDevice, "done", "captured", captured)
			return nil
		case <-ticker.C:
			for i := 0; i < packetsPerTick; i++ {
				p := usb.Packet{
					Token:    usb.TokenOut,
					Endpoint: 1,
					Data:     tone.packet(),
				}
				dev.HandleData(&p)
			}
			be.Pump(packetsPerTick*audio.PacketSize + 1)
			for i := 0; i < packetsPerTick; i++ {
				p := usb.Packet{
					Token:    usb.TokenIn,
					Endpoint: 1,
					Data:     inPacket,
				}
				dev.HandleData(&p)
				if p.Status == usb.StatusSuccess {
					captured += p.ActualLength
				}
			}
		}
	}
}

// enumerate walks the device through the control phase a host performs:
// descriptor reads, configuration, and switching both streams on.
func enumerate(dev *audio.Device) error {
	var setup usb.SetupPacket

	usb.GetDescriptorSetup(&setup, topology.DescriptorTypeDevice, 0, 64)
	p := usb.Packet{Token: usb.TokenSetup, Data: make([]byte, 64)}
	dev.HandleControl(&p, &setup, nil)
	if p.Status != usb.StatusSuccess {
		return fmt.Errorf("device descriptor: %w", pkg.ErrStall)
	}

	usb.SetConfigurationSetup(&setup, topology.ConfigValue)
	p = usb.Packet{Token: usb.TokenSetup}
	dev.HandleControl(&p, &setup, nil)
	if p.Status != usb.StatusSuccess {
		return fmt.Errorf("set configuration: %w", pkg.ErrStall)
	}

	for _, iface := range []uint8{topology.InterfaceOutputStream, topology.InterfaceInputStream} {
		usb.SetInterfaceSetup(&setup, iface, audio.AltsetOn)
		p = usb.Packet{Token: usb.TokenSetup}
		dev.HandleControl(&p, &setup, nil)
		if p.Status != usb.StatusSuccess {
			return fmt.Errorf("set interface %d: %w", iface, pkg.ErrStall)
		}
	}
	return nil
}

// toneGen produces a stereo S16LE sine wave one packet at a time.
type toneGen struct {
	freq  float64
	phase float64
}

func newToneGen(freq float64) *toneGen {
	return &toneGen{freq: freq}
}

func (g *toneGen) packet() []byte {
	const frames = audio.PacketSize / 4 // stereo S16LE
	step := 2 * math.Pi * g.freq / float64(topology.SampleRate)
	p := make([]byte, audio.PacketSize)
	for i := 0; i < frames; i++ {
		s := int16(math.Sin(g.phase) * 0.3 * math.MaxInt16)
		g.phase += step
		p[i*4] = uint8(s)
		p[i*4+1] = uint8(s >> 8)
		p[i*4+2] = uint8(s)
		p[i*4+3] = uint8(s >> 8)
	}
	return p
}
