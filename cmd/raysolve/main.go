package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/raysolver/config"
	"github.com/domino14/raysolver/distio"
	"github.com/domino14/raysolver/positions"
	"github.com/domino14/raysolver/render"
	"github.com/domino14/raysolver/retrograde"
)

var (
	GitVersion string
)

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

// checkMemory refuses budgets whose universe would not fit comfortably.
func checkMemory(budget int, fraction float64) error {
	need, err := positions.EstimateBytes(budget)
	if err != nil {
		return err
	}
	total := memory.TotalMemory()
	log.Info().
		Uint64("estimated-bytes", need).
		Uint64("total-system-memory-bytes", total).
		Float64("memory-fraction", fraction).
		Msg("memory-estimate")
	if total > 0 && float64(need) > fraction*float64(total) {
		return fmt.Errorf("budget %d needs about %d bytes, more than %.2f of system memory (%d bytes)",
			budget, need, fraction, total)
	}
	return nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))
	log.Info().Str("version", GitVersion).Interface("settings", cfg.Settings()).Msg("loaded-config")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	budget := cfg.GetInt(config.ConfigBudget)
	if err := checkMemory(budget, cfg.GetFloat64(config.ConfigMemoryFraction)); err != nil {
		log.Fatal().Err(err).Msg("memory-check")
	}

	universe, err := positions.Generate(budget)
	if err != nil {
		log.Fatal().Err(err).Msg("generating positions")
	}
	fmt.Println(len(universe))

	solver := &retrograde.Solver{}
	solver.SetThreads(cfg.GetInt(config.ConfigThreads))
	solver.SetLogStream(os.Stdout)
	if err := solver.Init(ctx, universe); err != nil {
		log.Fatal().Err(err).Msg("seeding terminal positions")
	}
	if err := solver.Solve(ctx); err != nil {
		log.Fatal().Err(err).Msg("solving")
	}

	summary := solver.Summary()
	mean0, _ := summary.MeanStdev0()
	log.Info().
		Int("terminal", summary.Terminal).
		Int("labeled0", summary.Labeled0).
		Int("labeled1", summary.Labeled1).
		Int("max-dist0", summary.MaxDist0()).
		Float64("mean-dist0", mean0).
		Str("fingerprint", fmt.Sprintf("%016x", solver.Fingerprint())).
		Msg("solve-summary")

	if cfg.GetBool(config.ConfigHistogram) {
		fmt.Print(summary.String())
		if err := summary.WriteHistogram(os.Stdout, 10, 60); err != nil {
			log.Err(err).Msg("histogram")
		}
	}

	if dp := cfg.GetString(config.ConfigDumpPath); dp != "" {
		if err := distio.WriteFile(dp, universe, solver); err != nil {
			log.Fatal().Err(err).Msg("writing dump")
		}
	}

	if cfg.GetBool(config.ConfigPrintUnreachable) {
		for _, pos := range universe {
			if _, ok := solver.Dist0(pos); !ok {
				fmt.Println(pos)
			}
		}
	}

	printPath := cfg.GetBool(config.ConfigPrintPath)
	svgPath := cfg.GetString(config.ConfigSVGPath)
	if !printPath && svgPath == "" {
		return
	}
	deepest, d, ok := solver.Deepest()
	if !ok {
		log.Warn().Msg("no labeled position; no line to show")
		return
	}
	log.Info().Int("dist0", d).Msg("building line from deepest position")
	line, err := retrograde.BuildPath(deepest, solver)
	if err != nil {
		// The labels contradict each other; this is a bug, not bad input.
		log.Fatal().Err(err).Msg("building path")
	}
	if printPath {
		for _, pos := range line {
			fmt.Println(pos)
		}
	}
	if svgPath != "" {
		f, err := os.Create(svgPath)
		if err != nil {
			log.Fatal().Err(err).Msg("creating svg")
		}
		render.Line(f, line, render.DefaultOptions())
		if err := f.Close(); err != nil {
			log.Fatal().Err(err).Msg("writing svg")
		}
		log.Info().Str("filename", svgPath).Int("plies", len(line)-1).Msg("wrote-svg")
	}
}
