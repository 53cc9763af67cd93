package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/fieldsnap/dump"
	"github.com/signadot/fieldsnap/snapfile"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='configuration file'"`
	Color      bool   `cli:"name=color desc='output with color'"`
	Verbose    bool   `cli:"name=v desc='include offsets and vacant records'"`

	Out      string
	CloseOut func() error

	File *snapfile.Config
	Log  *slog.Logger

	Main *cli.Command
}

// colorSet reports whether -color was given on the command line.
func (cfg *MainConfig) colorSet() bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		return opt.Value != nil
	}
	return false
}

func (cfg *MainConfig) colors(w io.Writer) *dump.Colors {
	if cfg.Color {
		return dump.NewColors()
	}
	if cfg.colorSet() {
		return nil
	}
	mode := "auto"
	if cfg.File != nil && cfg.File.Output.Color != "" {
		mode = cfg.File.Output.Color
	}
	switch mode {
	case "always":
		return dump.NewColors()
	case "never":
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return dump.NewColors()
	}
	return nil
}

func (cfg *MainConfig) dumpOpts(w io.Writer) []dump.Option {
	res := []dump.Option{dump.WithColors(cfg.colors(w))}
	if cfg.Verbose {
		res = append(res, dump.Verbose())
	}
	return res
}

type DumpConfig struct {
	*MainConfig

	Dump *cli.Command
}

type RecordsConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='filter expression'"`

	Records *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Blob bool `cli:"name=blob desc='diff blob files instead of state files'"`

	Diff *cli.Command
}

type VerifyConfig struct {
	*MainConfig

	Verify *cli.Command
}

type StatConfig struct {
	*MainConfig

	Stat *cli.Command
}
