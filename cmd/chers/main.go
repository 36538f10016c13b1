package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

const name = "chers"

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	logger.Info().
		Str("name", name).
		Str("versionName", versionName).
		Str("buildDate", buildDate).
		Str("gitRevision", gitRevision).
		Str("runtimeVersion", runtime.Version()).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Int("numCPU", runtime.NumCPU()).
		Msg("started")

	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err = run(ctx, os.Args, os.Stdin, os.Stdout, logger)
	if err != nil {
		logger.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer, logger zerolog.Logger) error {
	var cliArgs = NewCommandArgs(args)
	var handler = NewCommandHandler()
	var cmd = &commands{
		ctx:    ctx,
		args:   cliArgs,
		in:     in,
		out:    out,
		logger: logger.With().Str("command", cliArgs.CommandName()).Logger(),
	}
	handler.Add("perft", cmd.perft)
	handler.Add("divide", cmd.divide)
	handler.Add("search", cmd.search)
	handler.Add("bench", cmd.bench)
	handler.Add("play", cmd.play)
	return handler.Execute(cliArgs.CommandName())
}
