package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethicomply/lms-contract-tests/client"
	"github.com/ethicomply/lms-contract-tests/config"
	"github.com/ethicomply/lms-contract-tests/framework"
	"github.com/ethicomply/lms-contract-tests/lmstests"
	"github.com/ethicomply/lms-contract-tests/logging"

	"github.com/fatih/color"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) (exitCode int) {
	var params commandParams
	if !params.Read(args) {
		return 1
	}
	if params.noColor {
		color.NoColor = true
	}
	logger := logging.New(os.Stderr, params.debugAll, color.NoColor)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Unexpected error, stopping")
			exitCode = 1
		}
	}()

	cfg, err := config.Load(params.envFile, params.envFileSet)
	if err == nil {
		err = params.applyTo(cfg)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		return 1
	}
	logger.Debug().
		Str("base_url", cfg.BaseURL).
		Dur("timeout", cfg.RequestTimeout).
		Str("quiz_module", cfg.Quiz.ModuleID).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Starting LMS API verification")
	fmt.Printf("Base URL: %s\n\n", cfg.BaseURL)
	framework.PrintFilterDescription(os.Stdout, params.filters, lmstests.AlwaysRun)

	apiClient := client.NewAPIClient(cfg.BaseURL, cfg.RequestTimeout)
	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := lmstests.RunTestSuite(ctx, apiClient, cfg, params.filters.AsFilter, testLogger)

	framework.PrintResults(results, os.Stdout)
	if ctx.Err() != nil {
		logger.Warn().Msg("Run interrupted")
		return 1
	}
	if results.Aborted {
		return 1
	}
	return 0
}
