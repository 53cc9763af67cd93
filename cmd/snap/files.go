package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/fieldsnap/codec"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/snapfile"
	"github.com/signadot/fieldsnap/table"
)

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.Log == nil {
		return slog.Default()
	}
	return cfg.Log
}

func openFile(cc *cli.Context, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cc.In), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	return f, nil
}

func getBlobFile(cc *cli.Context, path string) (*codec.Blob, error) {
	r, err := openFile(cc, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	blob, err := snapfile.ReadBlob(r, nil)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return blob, nil
}

func getStateFile(cc *cli.Context, path string) (*prop.Model, *table.Set, error) {
	r, err := openFile(cc, path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	m, tables, err := snapfile.ReadState(r, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return m, tables, nil
}

// fileArgs returns args, or stdin when there are none.
func fileArgs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func separate(w io.Writer, i, n int) error {
	if i == n-1 {
		return nil
	}
	_, err := w.Write([]byte("---\n"))
	return err
}
