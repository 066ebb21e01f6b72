package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	steg "github.com/zedseven/textsteg"
	"github.com/zedseven/textsteg/internal/config"
)

var (
	flagConfig    string
	flagAlgorithm string
	flagChannels  int
	flagSentinel  string
	flagCapacity  string
	flagVerbose   int
	flagQuiet     bool
)

// errNoMessage makes the process exit with status 1 without printing an error.
var errNoMessage = errors.New("no hidden message found")

var rootCmd = &cobra.Command{
	Use:           "steg",
	Short:         "Hide text in the least-significant bits of an image",
	Long:          "steg embeds a text message in the lowest bit of the red, green and blue channels of an image, and recovers it again. The output must be kept in a lossless format.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errNoMessage) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file (default: .steg.yml, then ~/.config/steg/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagAlgorithm, "algorithm", "column", "scan order: column|row")
	rootCmd.PersistentFlags().IntVar(&flagChannels, "channels", 3, "colour channels used per pixel, starting from red (1-3)")
	rootCmd.PersistentFlags().StringVar(&flagSentinel, "sentinel", "%", "character that terminates the hidden message")
	rootCmd.PersistentFlags().StringVar(&flagCapacity, "capacity", "exact", "capacity check: exact|approx")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "more output (repeat for debug output)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "no progress output")
}

// loadConfig layers the config files, then any flag set on the command line.
func loadConfig(cmd *cobra.Command) (config.FileConfig, error) {
	var cfg config.FileConfig
	if flagConfig != "" {
		c, err := config.LoadFile(flagConfig)
		if err != nil {
			return cfg, err
		}
		cfg = c
	} else {
		if c, err := config.LoadGlobal(); err == nil {
			cfg = cfg.Merge(c)
		}
		if wd, err := os.Getwd(); err == nil {
			if c, err := config.LoadLocal(wd); err == nil {
				cfg = cfg.Merge(c)
			}
		}
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = &flagAlgorithm
	}
	if flags.Changed("channels") {
		cfg.Channels = &flagChannels
	}
	if flags.Changed("sentinel") {
		cfg.Sentinel = &flagSentinel
	}
	if flags.Changed("capacity") {
		cfg.Capacity = &flagCapacity
	}
	return cfg, nil
}

// resolve returns the stego format and output level for a command.
func resolve(cmd *cobra.Command) (config.FileConfig, steg.Format, steg.OutputLevel, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, steg.Format{}, steg.OutputNone, err
	}
	f, err := cfg.Format()
	if err != nil {
		return cfg, f, steg.OutputNone, err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return cfg, f, steg.OutputNone, err
	}
	switch {
	case flagQuiet:
		lvl = steg.OutputNone
	case flagVerbose > 0:
		lvl = min(steg.OutputSteps+steg.OutputLevel(flagVerbose), steg.OutputDebug)
	}
	return cfg, f, lvl, nil
}
