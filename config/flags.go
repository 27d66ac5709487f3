// Package config reads fuzzgraph settings from command-line flags or a YAML file.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/vadiminshakov/fuzzgraph/internal/domain"
)

// Get parses os.Args.
func Get() (Config, error) {
	return Parse(os.Args[1:])
}

// Parse reads settings from args. When --config is given the YAML file wins and other flags are ignored.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("fuzzgraph", flag.ContinueOnError)
	config := fs.String("config", "", "path to yaml config")
	data := fs.String("data", DefaultDataFile, "snapshot file; relative paths resolve against the executable's directory")
	unit := fs.String("unit", "ether", "unit the amounts are recorded in: ether, gwei or wei")
	addr := fs.String("addr", DefaultAddr, "address the chart page listens on")
	format := fs.String("format", "png", "chart image format: png or svg")
	width := fs.Int("width", 0, "chart width in pixels")
	height := fs.Int("height", 0, "chart height in pixels")
	showTotal := fs.Bool("total", false, "draw the total balance line")
	showCumulative := fs.Bool("cumulative", false, "draw the cumulative rewards paid line")
	open := fs.Bool("open", false, "open the chart page in the system browser")
	debug := fs.Bool("debug", false, "development logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *config != "" {
		return getYaml(*config)
	}

	if *width < 0 || *height < 0 {
		return Config{}, fmt.Errorf("invalid chart size provided, --width=%d --height=%d", *width, *height)
	}

	return build(*data, *unit, *addr, *format, *width, *height, domain.Layers{Total: *showTotal, CumulativeRewards: *showCumulative}, *open, *debug)
}
