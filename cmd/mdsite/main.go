package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdsite/cmd/mdsite/commands"
	derrors "git.home.luguber.info/inful/mdsite/internal/errors"
	"git.home.luguber.info/inful/mdsite/internal/version"
)

func main() {
	var cli commands.CLI
	global := commands.NewGlobal()

	ctx := kong.Parse(&cli,
		kong.Name("mdsite"),
		kong.Description("Render a restricted Markdown dialect to HTML and publish static sites."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := ctx.Run(global, &cli); err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
		os.Exit(1)
	}
}
