package main

import (
	"cibgen/internal/di"
	"cibgen/internal/structures"
	"flag"
	"fmt"
	"os"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the YAML config file")
	flag.StringVar(&flags.SnapshotPath, "snapshot", "", "path to the raw snapshot file to ingest")
	flag.StringVar(&flags.Date, "date", "", "snapshot date as YYYY-MM-DD, defaults to today (UTC)")
	flag.BoolVar(&flags.Rebuild, "rebuild", false, "regenerate all history files from the raw store")
	flag.BoolVar(&flags.DebugMode, "debug", false, "log to console as well")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "cibgen: %s\n", err)
		os.Exit(1)
	}
}
