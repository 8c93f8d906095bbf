// SPDX-License-Identifier: MIT
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"showcqt/internal/config"
	"showcqt/pkg/build"
)

// ParseArgs builds the root command tree and runs it against os.Args,
// layering flags on top of cfg (typically loaded from file/environment
// via config.LoadConfig beforehand). Command selection is communicated
// back through cfg.Command: "" means the default render command was
// selected and the rest of cfg is ready to drive it; "devices" and
// "version" are one-off commands that print and exit before any engine
// is constructed.
func ParseArgs(cfg *config.Config) error {
	buildInfo := build.GetBuildFlags()

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         "Render a Constant-Q Transform spectrum video from audio",
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Command = ""
			return nil
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// CQT tuning options (spec.md §6). Defaults come from cfg, which the
	// caller has already populated from config.LoadConfig (file and
	// SHOWCQT_* environment overrides); flags take the final word.
	rootCmd.PersistentFlags().Float64Var(&cfg.Volume, "volume", cfg.Volume,
		"Linear gain applied to the kernel amplitude before bar/color evaluation")
	rootCmd.PersistentFlags().Float64Var(&cfg.TimeClamp, "time-clamp", cfg.TimeClamp,
		"Maximum window duration in seconds, clamps low-frequency kernel length")
	rootCmd.PersistentFlags().Float64Var(&cfg.CoeffClamp, "coeff-clamp", cfg.CoeffClamp,
		"Sparse kernel coefficient sort/cutoff multiplier")
	rootCmd.PersistentFlags().Float64Var(&cfg.Gamma, "gamma", cfg.Gamma,
		"Gamma correction applied to bar brightness")
	rootCmd.PersistentFlags().IntVar(&cfg.FPS, "fps", cfg.FPS,
		"Output video frame rate")
	rootCmd.PersistentFlags().IntVar(&cfg.Count, "count", cfg.Count,
		"Number of scheduler steps per output frame; each step adds one spectrogram row")

	// Audio source selection.
	rootCmd.PersistentFlags().StringVar(&cfg.InputPath, "input", cfg.InputPath,
		"WAV file to render; omit to capture from a live input device")
	rootCmd.PersistentFlags().IntVarP(&cfg.InputDevice, "device", "d", cfg.InputDevice,
		"PortAudio input device ID (use the 'devices' command to list them)")
	rootCmd.PersistentFlags().IntVarP(&cfg.FramesPerBuffer, "frames-per-buffer", "b", cfg.FramesPerBuffer,
		"Frames per audio buffer (affects capture latency)")

	// Video sink selection.
	rootCmd.PersistentFlags().StringVarP(&cfg.OutputDir, "output", "o", cfg.OutputDir,
		"Directory to write the rendered PNG frame sequence into")
	rootCmd.PersistentFlags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr,
		"Address to serve a live WebSocket frame feed on, e.g. :8080; empty disables it")

	// Debug / observability.
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel,
		"Log verbosity: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&cfg.TUI, "tui", cfg.TUI,
		"Show a live terminal dashboard while rendering")

	devicesCmd := &cobra.Command{
		Use:   "devices",
		Short: "List available PortAudio input devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Command = "devices"
			return nil
		},
	}
	rootCmd.AddCommand(devicesCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%s %s (commit %s, built %s)\n",
				buildInfo.Name, buildInfo.Version, buildInfo.Commit, buildInfo.Time)
			cfg.Command = "version"
			return nil
		},
	}
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetArgs(os.Args[1:])
	return rootCmd.Execute()
}
