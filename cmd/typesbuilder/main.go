package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/typesbuilder/cmd/typesbuilder/commands"
	ferrors "git.home.luguber.info/inful/typesbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/typesbuilder/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli := commands.CLI{Stdout: os.Stdout}
	parser := kong.Parse(&cli,
		kong.Name("typesbuilder"),
		kong.Description("Produce dist-types/index.d.ts for a JavaScript or TypeScript package."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := parser.Run(&cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
