package main

import (
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pb40development/bim-portal-sub001/cmd"
)

// main is the entry point of the application.
// It sets up logging based on the DEBUG_BIMPORTAL environment variable,
// starts a goroutine to listen for interrupt signals, and executes the main command.
func main() {
	configureLogLevelFromEnv()

	// This block sets up a go routine to listen for an interrupt signal which will immediately exit the program
	stopChan := setupInterruptListener()
	go handleInterrupt(stopChan, fatalLog, os.Exit)

	// Program entry point
	cmd.Execute()
}

// configureLogLevelFromEnv enables debug logging when DEBUG_BIMPORTAL is set
// to anything other than "false" or "0", and disables logging otherwise.
func configureLogLevelFromEnv() {
	switch os.Getenv("DEBUG_BIMPORTAL") {
	case "", "false", "0":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// setupInterruptListener registers a buffered channel that receives interrupt signals.
func setupInterruptListener() chan os.Signal {
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	return stopChan
}

// handleInterrupt waits for a signal on stopChan, logs the given message, and
// exits the process. The log and exit functions are parameters so tests can
// observe the calls.
func handleInterrupt(stopChan chan os.Signal, fatalLog func(string), exit func(int)) {
	<-stopChan
	fatalLog("Interrupt signal received. Exiting...")
	exit(1)
}

func fatalLog(msg string) {
	log.Error().Msg(msg)
}
