package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/fieldsnap/dump"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	from, err := cfg.render(cc, args[0])
	if err != nil {
		return err
	}
	to, err := cfg.render(cc, args[1])
	if err != nil {
		return err
	}
	d := dump.Diff(from, to, dump.WithColors(cfg.colors(cc.Out)))
	if d == "" {
		return nil
	}
	if _, err := io.WriteString(cc.Out, d); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// render prints file without color so that only content differences show.
func (cfg *DiffConfig) render(cc *cli.Context, file string) (string, error) {
	buf := bytes.NewBuffer(nil)
	var opts []dump.Option
	if cfg.Verbose {
		opts = append(opts, dump.Verbose())
	}
	if cfg.Blob {
		blob, err := getBlobFile(cc, file)
		if err != nil {
			return "", err
		}
		if err := dump.Blob(buf, blob, opts...); err != nil {
			return "", fmt.Errorf("error dumping %s: %w", file, err)
		}
		return buf.String(), nil
	}
	m, tables, err := getStateFile(cc, file)
	if err != nil {
		return "", err
	}
	if err := dump.Records(buf, m, tables, opts...); err != nil {
		return "", fmt.Errorf("error printing %s: %w", file, err)
	}
	return buf.String(), nil
}
