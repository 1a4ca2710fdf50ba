package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"

	"recurser/node"
)

type MainConfig struct {
	J     bool `cli:"name=j aliases=json desc='output json instead of yaml'"`
	Color bool `cli:"name=color desc='colorize output'"`
	Depth int  `cli:"name=depth desc='maximum nesting depth, 0 for none'"`

	Main *cli.Command
}

func (cfg *MainConfig) converterOpts() []node.Option {
	if cfg.Depth == 0 {
		return nil
	}
	return []node.Option{node.WithMaxDepth(cfg.Depth)}
}

// encode writes v to w as YAML, or as indented JSON with -j.
func (cfg *MainConfig) encode(w io.Writer, v any) error {
	if cfg.J {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// palette decides whether w gets colored output: an explicit -color wins,
// otherwise color is used when w is a terminal.
func (cfg *MainConfig) palette(w io.Writer) *palette {
	if cfg.Color {
		return newPalette(true)
	}

	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return newPalette(false)
			}
		}
	}

	f, ok := w.(*os.File)
	if !ok {
		return newPalette(false)
	}
	return newPalette(isatty.IsTerminal(f.Fd()))
}

type palette struct {
	path  func(string, ...any) string
	value func(string, ...any) string
}

func newPalette(on bool) *palette {
	if !on {
		return &palette{path: fmt.Sprintf, value: fmt.Sprintf}
	}

	path := color.RGB(128, 168, 196)
	path.EnableColor()
	value := color.RGB(8, 196, 16)
	value.EnableColor()

	return &palette{path: path.SprintfFunc(), value: value.SprintfFunc()}
}

type FoldConfig struct {
	main *MainConfig

	Fold *cli.Command
}

type GetConfig struct {
	main *MainConfig

	Get *cli.Command
}

type WalkConfig struct {
	main *MainConfig

	Records bool `cli:"name=r desc='list nested records as well as leaf values'"`

	Walk *cli.Command
}
