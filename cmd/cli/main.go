package main

import (
	"os"

	"github.com/sw385/Semester-Schedule/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error().Err(err).Msg("semester-schedule failed")
		os.Exit(1)
	}
}
