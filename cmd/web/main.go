package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peterkuimelis/sinkisle/internal/config"
	"github.com/peterkuimelis/sinkisle/internal/web"
)

func main() {
	settings, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", settings.Addr, "HTTP address to listen on")
	settings.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger := settings.Logger()
	cfg, err := settings.GameConfig()
	if err != nil {
		logger.WithError(err).Fatal("load game config")
	}

	srv := web.NewServer(cfg, settings.MaxTurns, logger)
	if err := srv.ListenAndServe(*addr); err != nil {
		logger.WithError(err).Fatal("listen")
	}
}
