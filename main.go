package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-life/gui"
	"github.com/sheikhrachel/torus-life/model"
	"github.com/sheikhrachel/torus-life/runner"
	"github.com/sheikhrachel/torus-life/utils"
)

func main() {
	logger := log.New(os.Stderr, "torus-life: ", log.LstdFlags)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, logger)
	stop()
	if err != nil {
		logger.Printf("%+v", err)
		os.Exit(1)
	}
}

// run plays the game until ctx ends or a stop condition is met. Terminal
// frames go to out.
func run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) error {
	config, err := loadConfig(args, logger)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	board, err := initializeBoard(config)
	if err != nil {
		return err
	}

	switch config.Renderer {
	case utils.RendererGUI:
		return gui.Run(ctx, board, config, logger)
	default:
		displayGameInfo(logger, config, board)
		return runner.New(board, model.NewTerminalRenderer(out), config, logger).Run(ctx)
	}
}
