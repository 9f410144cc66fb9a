package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/effective-security/x/ctl"
	"github.com/keymesh/xpkix/cmd/xpkix-tool/cli"
	"github.com/keymesh/xpkix/internal/version"
)

type app struct {
	cli.Cli

	CsrInfo cli.CsrInfoCmd `cmd:"" help:"print CSR info"`
	Key     cli.KeyCmd     `cmd:"" help:"Private key commands"`
	P12     cli.P12Cmd     `cmd:"" help:"PKCS#12 bag commands"`
	Desede  cli.DesedeCmd  `cmd:"" help:"Triple-DES block commands"`
}

func main() {
	realMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func realMain(args []string, out io.Writer, errout io.Writer, exit func(int)) {
	cl := app{
		Cli: cli.Cli{},
	}
	cl.Cli.WithErrWriter(errout).
		WithWriter(out)

	parser, err := kong.New(&cl,
		kong.Name("xpkix-tool"),
		kong.Description("PKI artifact tools"),
		kong.Writers(out, errout),
		kong.Exit(exit),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version.Current(),
		})
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args[1:])
	parser.FatalIfErrorf(err)

	if ctx != nil {
		err = ctx.Run(&cl.Cli)
		ctx.FatalIfErrorf(err)
	}
}
