package main

import (
	"flag"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/torus-life/model"
	"github.com/sheikhrachel/torus-life/utils"
)

const defaultConfigPath = "config.json"

// loadConfig layers defaults, the JSON config file and command-line flags, in
// that order. A missing default config file falls back to the defaults.
func loadConfig(args []string, logger *log.Logger) (utils.Config, error) {
	config := utils.DefaultConfig()
	fs, path := newFlagSet(&config)
	if err := fs.Parse(args); err != nil {
		return config, errors.Wrap(err, "[loadConfig] failed to parse flags")
	}

	fileConfig, err := utils.LoadConfig(*path)
	switch {
	case err == nil:
		// flags win over the file, so parse them again on top of it
		config = fileConfig
		fs, _ = newFlagSet(&config)
		if err = fs.Parse(args); err != nil {
			return config, errors.Wrap(err, "[loadConfig] failed to parse flags")
		}
	case errors.Is(err, os.ErrNotExist) && *path == defaultConfigPath:
		logger.Printf("using default configuration (%s not found)", defaultConfigPath)
	default:
		return config, err
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrap(err, "[loadConfig] invalid configuration")
	}
	return config, nil
}

func newFlagSet(config *utils.Config) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet("torus-life", flag.ContinueOnError)
	path := fs.String("config", defaultConfigPath, "path to a JSON config file")
	config.Bind(fs)
	return fs, path
}

// initializeBoard builds the randomized starting board
func initializeBoard(config utils.Config) (*model.Board, error) {
	var opts []model.Option
	if config.Seed != 0 {
		opts = append(opts, model.WithSeed(config.Seed))
	}
	board, err := model.NewBoard(config.Width, config.Height, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeBoard] failed to create board")
	}
	board.Randomize()
	return board, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(logger *log.Logger, config utils.Config, board *model.Board) {
	logger.Printf("grid: %dx%d | initial living cells: %d | tick: %v | auto restart: %v",
		board.Width(), board.Height(), board.Population(), config.Tick.Duration, config.AutoRestart)
	logger.Println("press Ctrl+C to exit gracefully")
}
