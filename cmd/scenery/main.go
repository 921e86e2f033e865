package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/scenery/config"
)

// Version information, set by build flags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "scenery",
		Short: "Scene lifecycle demo host",
		Long: `Scenery drives a small state graph in the terminal.

Each state owns marker-tagged scenes: entering a state runs the scene setup
once, leaving it despawns every tagged root with its descendants.

Keys:
  enter  start        p  pause        r  resume
  m      main menu    `+"`"+`  dev modal    x  close modals
  q/esc  quit`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $HOME/.config/scenery/config.toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Write logs to the log directory")
	rootCmd.PersistentFlags().Bool("audio", false, "Enable audio cues")
	rootCmd.PersistentFlags().Duration("tick", 0, "Override the scheduler tick")

	if err := bindFlags(v, rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(
		runCmd(v),
		statesCmd(v),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bindFlags maps persistent flags onto config keys; unset flags leave defaults, file and env intact
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"log.debug":     "debug",
		"audio.enabled": "audio",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// loadConfig reads the file named by --config and applies --tick if set
func loadConfig(cmd *cobra.Command, v *viper.Viper) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(v, path)
	if err != nil {
		return config.Config{}, err
	}
	if tick, _ := cmd.Flags().GetDuration("tick"); tick > 0 {
		cfg.Tick = tick
	}
	return cfg, nil
}
