package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/anggasct/crossroad"
	"github.com/anggasct/crossroad/pkg/observers"
	"github.com/anggasct/crossroad/visualization"
)

func main() {

	flag.Parse()

	var logger, level = getOutput(inputOption("debug", false), os.Stdout, os.Stderr)

	defer func() {
		if r := recover(); r != nil {
			logger.Error(r)
			os.Exit(1)
		}
	}()

	var ctx, stop = signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	defer stop()

	config, err := loadConfig(
		inputOption("config", ""),
		inputOption("unit", ""),
		inputOption("seed", -1),
		os.Stdin,
		os.Stdout,
	)

	if err != nil {
		panic(err)
	}

	simulation, err := crossroad.NewSimulation(config, crossroad.WithObserver(observers.NewLoggingObserver(level, logger)))

	if err != nil {
		panic(err)
	}

	if file := inputOption("dot", ""); file != "" {
		if err := visualization.NewDOTGenerator(simulation).GenerateToFile(file); err != nil {
			panic(err)
		}
		return
	}

	if _, err := simulation.Run(ctx); err != nil {
		panic(err)
	}
}
