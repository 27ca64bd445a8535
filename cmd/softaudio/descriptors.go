package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/softaudio/topology"
)

func descriptorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "descriptors",
		Short: "Dump the device and configuration descriptors",
		RunE: func(cmd *cobra.Command, args []string) error {
			topo := topology.New()
			buf := make([]byte, 1024)

			n := topo.MarshalDevice(buf)
			fmt.Printf("device descriptor (%d bytes):\n%s\n", n, hex.Dump(buf[:n]))

			n = topo.MarshalConfiguration(buf)
			if n == 0 {
				return fmt.Errorf("configuration descriptor does not fit")
			}
			fmt.Printf("configuration descriptor (%d bytes):\n%s", n, hex.Dump(buf[:n]))

			fmt.Println("strings:")
			for i := uint8(1); i < 32; i++ {
				if topo.MarshalString(buf, i) == 0 {
					continue
				}
				s := decodeStringDescriptor(buf)
				fmt.Printf("  %2d: %s\n", i, s)
			}
			return nil
		},
	}
}

// decodeStringDescriptor turns a UTF-16LE string descriptor back into text.
func decodeStringDescriptor(desc []byte) string {
	n := int(desc[0])
	runes := make([]rune, 0, (n-2)/2)
	for i := 2; i+1 < n; i += 2 {
		runes = append(runes, rune(uint16(desc[i])|uint16(desc[i+1])<<8))
	}
	return string(runes)
}
