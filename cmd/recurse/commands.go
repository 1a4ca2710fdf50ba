package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "recurse").
		WithSynopsis("recurse [opts] command [opts] [files]").
		WithDescription("recurse normalizes keys and structure of yaml and json documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return recurseMain(cfg, cc, args)
		}).
		WithSubs(
			FoldCommand(cfg),
			GetCommand(cfg),
			WalkCommand(cfg))
}

func FoldCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FoldConfig{main: mainCfg}
	return cli.NewCommandAt(&cfg.Fold, "fold").
		WithAliases("f").
		WithSynopsis("fold [files]").
		WithDescription("fold the keys of documents to lowercase with '_' separators").
		WithRun(func(cc *cli.Context, args []string) error {
			return fold(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{main: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [files]").
		WithDescription("get the value at a dotted path of folded documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func WalkCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WalkConfig{main: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Walk, "walk").
		WithAliases("w").
		WithSynopsis("walk [opts] [files]").
		WithDescription("list the fields of folded documents, parents before children").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return walk(cfg, cc, args)
		})
}
