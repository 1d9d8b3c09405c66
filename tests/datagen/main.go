package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// Generates a synthetic raw snapshot store for manual pipeline runs:
// one file per day, a handful of integrations with slowly growing
// install counts and shifting version mixes.

var integrations = []string{"asusrouter", "hacs", "browser_mod", "adaptive_lighting", "localtuya"}

func main() {
	var (
		outDir = flag.String("out", "data/raw/custom_integrations", "output directory for raw snapshot files")
		days   = flag.Int("days", 30, "number of days to generate, ending today")
		seed   = flag.Int64("seed", 42, "rng seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	base := make(map[string]int, len(integrations))
	for i, name := range integrations {
		base[name] = 500 + i*700
	}

	start := time.Now().UTC().AddDate(0, 0, -*days+1)
	for d := 0; d < *days; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		day := make(map[string]map[string]any, len(integrations))

		for _, name := range integrations {
			base[name] += rng.Intn(25)
			total := base[name]
			versions := map[string]int{
				"1.0.0": total / 4,
				"1.1.0": total / 2,
			}
			if d > *days/2 {
				versions["2.0.0"] = total / 8
			}
			day[name] = map[string]any{"total": total, "versions": versions}
		}

		data, err := json.Marshal(day)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		path := filepath.Join(*outDir, date+".json")
		if err = os.WriteFile(path, data, 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fmt.Printf("wrote %d snapshot files to %s\n", *days, *outDir)
}
