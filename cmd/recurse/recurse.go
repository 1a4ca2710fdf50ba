package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"recurser/internal/appconfig"
	"recurser/node"
	"recurser/record"
)

var errNoSuchPath = errors.New("no value at path")

func recurseMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Depth < 0 {
		return fmt.Errorf("%w: -depth must not be negative", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func fold(cfg *FoldConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fold.Parse(cc, args)
	if err != nil {
		cfg.Fold.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	return eachInput(cc.In, args, func(name string, data []byte) error {
		if err := foldDoc(cfg.main, cc.Out, data); err != nil {
			return fmt.Errorf("error folding %s: %w", name, err)
		}
		return nil
	})
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a dotted path", cli.ErrUsage)
	}
	path := args[0]
	return eachInput(cc.In, args[1:], func(name string, data []byte) error {
		if err := getDoc(cfg.main, cc.Out, data, path); err != nil {
			return fmt.Errorf("error getting %s from %s: %w", path, name, err)
		}
		return nil
	})
}

func walk(cfg *WalkConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Walk.Parse(cc, args)
	if err != nil {
		cfg.Walk.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	p := cfg.main.palette(cc.Out)
	return eachInput(cc.In, args, func(name string, data []byte) error {
		if err := walkDoc(cfg.main, cc.Out, data, p, cfg.Records); err != nil {
			return fmt.Errorf("error walking %s: %w", name, err)
		}
		return nil
	})
}

func foldDoc(cfg *MainConfig, w io.Writer, data []byte) error {
	tree, err := appconfig.Decode(data)
	if err != nil {
		return err
	}
	folded, err := node.FoldKeys(tree, cfg.converterOpts()...)
	if err != nil {
		return err
	}
	return cfg.encode(w, folded)
}

func getDoc(cfg *MainConfig, w io.Writer, data []byte, path string) error {
	rec, err := loadDoc(cfg, data)
	if err != nil {
		return err
	}
	v, ok := rec.Lookup(path)
	if !ok {
		return fmt.Errorf("%w %q", errNoSuchPath, path)
	}
	return cfg.encode(w, v)
}

func walkDoc(cfg *MainConfig, w io.Writer, data []byte, p *palette, records bool) error {
	rec, err := loadDoc(cfg, data)
	if err != nil {
		return err
	}
	for path, v := range rec.Traverse() {
		if _, ok := v.(*record.Record); ok {
			if records {
				fmt.Fprintln(w, p.path("%s:", path))
			}
			continue
		}
		text, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintln(w, p.path("%s:", path), p.value("%s", text))
	}
	return nil
}

func loadDoc(cfg *MainConfig, data []byte) (*record.Record, error) {
	return appconfig.Parse(data, appconfig.WithConverterOptions(cfg.converterOpts()...))
}

// eachInput calls fn with the contents of every named file, or of in when
// no files are named. The name "-" also reads in.
func eachInput(in io.Reader, args []string, fn func(name string, data []byte) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		data, err := readArg(in, arg)
		if err != nil {
			return err
		}
		if err := fn(arg, data); err != nil {
			return err
		}
	}
	return nil
}

func readArg(in io.Reader, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(in)
	}
	f, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", arg, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
