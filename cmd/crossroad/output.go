package main

import (
	"io"

	"github.com/anggasct/crossroad/pkg/observers"
	"github.com/pbergman/logger"
)

func getOutput(debug bool, stdout, stderr io.Writer) (*logger.Logger, observers.LogLevel) {

	var handler = []logger.HandlerInterface{
		logger.NewWriterHandler(stdout, logger.LogLevelDebug()^logger.LogLevelError(), false),
		logger.NewWriterHandler(stderr, logger.LogLevelError(), false),
	}

	var level = observers.LogInfo

	if debug {
		level = observers.LogDebug
	}

	return logger.NewLogger("crossroad", handler...), level
}
