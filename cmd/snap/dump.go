package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/fieldsnap/dump"
)

func dumpBlobs(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	files := fileArgs(args)
	opts := cfg.dumpOpts(cc.Out)
	for i, file := range files {
		blob, err := getBlobFile(cc, file)
		if err != nil {
			return err
		}
		cfg.logger().Debug("dump", "file", file, "type", blob.TypeName, "bytes", len(blob.Data))
		if err := dump.Blob(cc.Out, blob, opts...); err != nil {
			return fmt.Errorf("error dumping %s: %w", file, err)
		}
		if err := separate(cc.Out, i, len(files)); err != nil {
			return err
		}
	}
	return nil
}
