package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/urfave/cli.v1"

	"github.com/sergev/plc/compiler"
	"github.com/sergev/plc/config"
)

var (
	emitFlag = cli.StringFlag{
		Name:  "emit",
		Value: "java",
		Usage: "output to produce: tokens, ast, typed or java",
	}
	outputFlag = cli.StringFlag{
		Name:  "output, o",
		Usage: "write output to `FILE` instead of stdout",
	}
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored diagnostics",
	}
	replFlag = cli.BoolFlag{
		Name:  "repl",
		Usage: "start the REPL even when stdin is not a terminal",
	}

	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[file]",
		Description: `The dumpconfig command writes the effective configuration as TOML.`,
	}
)

var errorColor = color.New(color.FgRed, color.Bold)

func main() {
	app := cli.NewApp()
	app.Name = "plc"
	app.Usage = "compile programs to Java"
	app.ArgsUsage = "[file | -]"
	app.Flags = []cli.Flag{emitFlag, outputFlag, configFileFlag, noColorFlag, replFlag}
	app.Commands = []cli.Command{dumpConfigCommand}
	app.Action = compileAction

	if err := app.Run(os.Args); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func compileAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		return err
	}
	setupColor(cfg.Color && !ctx.Bool(noColorFlag.Name))

	mode := ctx.String(emitFlag.Name)
	stage, err := emitStage(mode)
	if err != nil {
		return err
	}
	opts := cfg.CompilerOptions()

	path := ctx.Args().First()
	if path == "" && (ctx.Bool(replFlag.Name) || isInteractive()) {
		runREPL(compiler.NewSession(opts), cfg)
		return nil
	}

	opts.StopAfter = stage
	var res *compiler.Result
	if path == "" || path == "-" {
		res, err = compiler.CompileReader(os.Stdin, opts)
	} else {
		res, err = compiler.CompileFile(path, opts)
	}
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if name := ctx.String("output"); name != "" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return emit(out, mode, res)
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx.GlobalString(configFileFlag.Name))
	if err != nil {
		return err
	}
	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	return cfg.Write(dump)
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func setupColor(enabled bool) {
	color.NoColor = !enabled || !term.IsTerminal(int(os.Stderr.Fd()))
}

func printError(w io.Writer, err error) {
	errorColor.Fprint(w, "plc:")
	fmt.Fprintf(w, " %v\n", err)
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
