// cmd/kanadle/main.go
//
// Entrypoint: loads .env, configures zerolog for the terminal, and runs the
// root command. Settings themselves are resolved by internal/config.
package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanadle/internal/cli"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := cli.NewRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("kanadle failed")
		os.Exit(1)
	}
}
