package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/fieldsnap/codec"
)

func verify(cfg *VerifyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Verify.Parse(cc, args)
	if err != nil {
		return err
	}
	bad := 0
	for _, file := range fileArgs(args) {
		blob, err := getBlobFile(cc, file)
		if err == nil {
			err = codec.Verify(blob)
		}
		if err != nil {
			bad++
			cfg.logger().Debug("verify failed", "file", file, "error", err)
			fmt.Fprintf(cc.Out, "%s: %v\n", file, err)
			continue
		}
		fmt.Fprintf(cc.Out, "%s: ok\n", file)
	}
	if bad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
