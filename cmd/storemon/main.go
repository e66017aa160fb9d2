package main

import (
	"flag"
	"fmt"
	"os"
	"storemon/internal/di"
	"storemon/internal/structures"
	// Embedded tzdata so store timezones resolve on hosts without a
	// system zoneinfo database.
	_ "time/tzdata"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "configs/config.yaml", "path to config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "duplicate logs to stdout")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "storemon: %s\n", err)
		os.Exit(1)
	}
}
