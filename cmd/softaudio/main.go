// Command softaudio runs the emulated USB audio device against a synthetic
// guest, for exercising the device outside a virtual machine.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "softaudio",
		Short:         "Emulated USB audio device",
		Long:          "softaudio emulates a USB Audio Class 1.0 device and drives it with a synthetic guest.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to TOML configuration file")

	cmd.AddCommand(runCmd(&configPath))
	cmd.AddCommand(descriptorsCmd())
	return cmd
}
