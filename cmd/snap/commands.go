package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "snap").
		WithSynopsis("snap [opts] command [opts]").
		WithDescription("snap inspects field snapshot blobs and state files.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return snapMain(cfg, cc, args)
		}).
		WithSubs(
			DumpCommand(cfg),
			RecordsCommand(cfg),
			DiffCommand(cfg),
			VerifyCommand(cfg),
			StatCommand(cfg))
}

func DumpCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DumpConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("dump").
		WithAliases("d").
		WithSynopsis("dump [-v] [files]").
		WithDescription("print the blocks and leaves of blob files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dumpBlobs(cfg, cc, args)
		})
	cfg.Dump = cmd
	return cmd
}

func RecordsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RecordsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("records").
		WithAliases("r", "rec").
		WithSynopsis("records [-where expr] [files]").
		WithDescription(recordsDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return records(cfg, cc, args)
		})
	cfg.Records = cmd
	return cmd
}

const recordsDescription = `print the records of state files.

-where filters records with an expression over

  path      the record path, such as items[2].name
  kind      the kind name, such as Vector3
  depth     the number of path segments
  index     the side table slot of external records, -1 otherwise
  value     the record value; strings and object ids are resolved
  external  whether the value lives in a side table

and the method Under(path). For example

  snap records -where 'Under("items") && kind == "String"' state.yaml`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("di").
		WithSynopsis("diff [-blob] a b").
		WithDescription("diff two state files, or two blob files with -blob").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func VerifyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &VerifyConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("verify").
		WithAliases("ve").
		WithSynopsis("verify [files]").
		WithDescription("check the structure of blob files").
		WithRun(func(cc *cli.Context, args []string) error {
			return verify(cfg, cc, args)
		})
	cfg.Verify = cmd
	return cmd
}

func StatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StatConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("stat").
		WithAliases("st").
		WithSynopsis("stat [files]").
		WithDescription("print sizes of blob files and their tables").
		WithRun(func(cc *cli.Context, args []string) error {
			return stat(cfg, cc, args)
		})
	cfg.Stat = cmd
	return cmd
}
