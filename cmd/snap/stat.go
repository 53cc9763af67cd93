package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/fieldsnap/codec"
)

type blobStat struct {
	Type      string
	Bytes     int
	Blocks    int
	Leaves    int
	MaxDepth  int
	Strings   int
	Curves    int
	Gradients int
	Objects   int
}

func statBlob(blob *codec.Blob) (*blobStat, error) {
	st := &blobStat{
		Type:      blob.TypeName,
		Bytes:     len(blob.Data),
		Strings:   blob.Tables.Strings.Len(),
		Curves:    blob.Tables.Curves.Len(),
		Gradients: blob.Tables.Gradients.Len(),
		Objects:   blob.Tables.Objects.Len(),
	}
	err := codec.Walk(blob, func(ev codec.Event) error {
		switch ev.Kind {
		case codec.Enter:
			st.Blocks++
		case codec.Leaf:
			st.Leaves++
		}
		st.MaxDepth = max(st.MaxDepth, ev.Depth)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (st *blobStat) write(w io.Writer, file string) error {
	_, err := fmt.Fprintf(w, "%s:\n"+
		"  type: %s\n  bytes: %d\n  blocks: %d\n  leaves: %d\n  maxDepth: %d\n"+
		"  tables:\n    strings: %d\n    curves: %d\n    gradients: %d\n    objects: %d\n",
		file, st.Type, st.Bytes, st.Blocks, st.Leaves, st.MaxDepth,
		st.Strings, st.Curves, st.Gradients, st.Objects)
	return err
}

func stat(cfg *StatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stat.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, file := range fileArgs(args) {
		blob, err := getBlobFile(cc, file)
		if err != nil {
			return err
		}
		st, err := statBlob(blob)
		if err != nil {
			return fmt.Errorf("error walking %s: %w", file, err)
		}
		if err := st.write(cc.Out, file); err != nil {
			return err
		}
	}
	return nil
}
