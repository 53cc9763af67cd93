package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/fieldsnap/dump"
	"github.com/signadot/fieldsnap/query"
)

func records(cfg *RecordsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Records.Parse(cc, args)
	if err != nil {
		return err
	}
	var filter *query.Filter
	if cfg.Where != "" {
		filter, err = query.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	files := fileArgs(args)
	for i, file := range files {
		m, tables, err := getStateFile(cc, file)
		if err != nil {
			return err
		}
		opts := cfg.dumpOpts(cc.Out)
		if filter != nil {
			opts = append(opts, dump.WithFilter(filter.Func(tables)))
		}
		if err := dump.Records(cc.Out, m, tables, opts...); err != nil {
			return fmt.Errorf("error printing %s: %w", file, err)
		}
		if err := separate(cc.Out, i, len(files)); err != nil {
			return err
		}
	}
	return nil
}
