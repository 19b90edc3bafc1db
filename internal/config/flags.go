package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
type Flags struct {
	ConfigFilePath string
	LogLevel       string
	LogFilePath    string
	Width          int
	Height         int
	Mirror         bool
	MirrorAddr     string
	Advertise      bool
	Browse         bool

	fs *flag.FlagSet
}

// NewFlags defines the command-line flags on a new flag set.
func NewFlags(name string) *Flags {
	f := &Flags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default <user config dir>/%s/%s)", AppName, DefaultConfigFileName))
	f.fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - overrides config file")
	f.fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file ('-' for stderr) - overrides config file")
	f.fs.IntVar(&f.Width, "width", 0, "Surface width in pixels - overrides config file")
	f.fs.IntVar(&f.Height, "height", 0, "Surface height in pixels - overrides config file")
	f.fs.BoolVar(&f.Mirror, "mirror", false, "Serve a read-only websocket mirror for the host view")
	f.fs.StringVar(&f.MirrorAddr, "mirror-addr", "", "Listen address of the mirror - overrides config file")
	f.fs.BoolVar(&f.Advertise, "advertise", false, "Advertise the mirror over mDNS")
	f.fs.BoolVar(&f.Browse, "browse", false, "List mirrors advertised on the local network and exit")
	return f
}

// Parse parses args (without the program name).
func (f *Flags) Parse(args []string) error {
	return f.fs.Parse(args)
}

// ConfigPath returns the effective config file path.
func (f *Flags) ConfigPath() string {
	if f.ConfigFilePath != "" {
		return f.ConfigFilePath
	}
	return DefaultPath()
}

// ApplyOverrides updates cfg with the flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.Level = f.LogLevel
			}
		case "logfile":
			cfg.Logger.File = f.LogFilePath
		case "width":
			if f.Width > 0 {
				cfg.Board.Width = f.Width
			}
		case "height":
			if f.Height > 0 {
				cfg.Board.Height = f.Height
			}
		case "mirror":
			cfg.Mirror.Enabled = f.Mirror
		case "mirror-addr":
			if f.MirrorAddr != "" {
				cfg.Mirror.Addr = f.MirrorAddr
			}
		case "advertise":
			cfg.Mirror.Advertise = f.Advertise
		}
	})
	cfg.validate()
}
