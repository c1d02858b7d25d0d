package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/specialistvlad/psmgen/internal/app"
	"github.com/specialistvlad/psmgen/internal/cli"
	"github.com/specialistvlad/psmgen/internal/model"
)

// main is the entrypoint for the psmgen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		stop()
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	inv, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	psmgen := app.New(outW, logW, inv.Config)
	switch inv.Command {
	case cli.CommandValidate:
		_, err = psmgen.Validate(ctx)
	case cli.CommandWatch:
		err = psmgen.Watch(ctx)
	default:
		_, err = psmgen.Generate(ctx)
	}
	if err != nil {
		return failure(err)
	}
	return nil
}

// failure renders err as one "error:" line per problem.
func failure(err error) *cli.ExitError {
	var problems *model.ValidationErrors
	if errors.As(err, &problems) {
		return &cli.ExitError{Code: 1, Message: strings.TrimSuffix(problems.FormatStderr(), "\n")}
	}
	return &cli.ExitError{Code: 1, Message: "error: " + err.Error()}
}
