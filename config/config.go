package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/fuzzgraph/internal/domain"
	"github.com/vadiminshakov/fuzzgraph/internal/services/chart"
	"github.com/vadiminshakov/fuzzgraph/internal/storage/snapshotfile"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataFile = "balanceData.json"
	DefaultAddr     = "127.0.0.1:8089"
)

type Config struct {
	// DataPath is absolute; relative inputs are resolved against the executable's directory.
	DataPath    string
	Unit        snapshotfile.Unit
	Addr        string
	Format      chart.Format
	Width       int
	Height      int
	Layers      domain.Layers
	OpenBrowser bool
	Debug       bool
}

type ConfigTmp struct {
	Data                  string `yaml:"data"`
	Unit                  string `yaml:"unit,omitempty"`
	Addr                  string `yaml:"addr,omitempty"`
	Format                string `yaml:"format,omitempty"`
	WidthStr              string `yaml:"width,omitempty"`
	HeightStr             string `yaml:"height,omitempty"`
	ShowTotal             bool   `yaml:"show_total"`
	ShowCumulativeRewards bool   `yaml:"show_cumulative_rewards"`
	OpenBrowser           bool   `yaml:"open_browser"`
	Debug                 bool   `yaml:"debug"`
}

// executableDir is swapped in tests.
var executableDir = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "locate executable")
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", errors.Wrap(err, "resolve executable symlinks")
	}
	return filepath.Dir(exe), nil
}

// ResolveDataPath makes path absolute relative to the executable's directory,
// so the tool behaves the same from any working directory.
func ResolveDataPath(path string) (string, error) {
	if path == "" {
		path = DefaultDataFile
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	dir, err := executableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path), nil
}

func getYaml(path string) (Config, error) {
	var c ConfigTmp

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(f, &c); err != nil {
		return Config{}, err
	}

	width, err := parseSize("width", c.WidthStr)
	if err != nil {
		return Config{}, err
	}
	height, err := parseSize("height", c.HeightStr)
	if err != nil {
		return Config{}, err
	}

	return build(c.Data, c.Unit, c.Addr, c.Format, width, height, domain.Layers{
		Total:             c.ShowTotal,
		CumulativeRewards: c.ShowCumulativeRewards,
	}, c.OpenBrowser, c.Debug)
}

func build(data, unit, addr, format string, width, height int, layers domain.Layers, openBrowser, debug bool) (Config, error) {
	dataPath, err := ResolveDataPath(data)
	if err != nil {
		return Config{}, err
	}

	u, err := snapshotfile.ParseUnit(unit)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'unit' param: %w", err)
	}

	if format == "" {
		format = string(chart.FormatPNG)
	}
	f, err := chart.ParseFormat(format)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'format' param: %w", err)
	}

	if addr == "" {
		addr = DefaultAddr
	}
	if width == 0 {
		width = chart.DefaultWidth
	}
	if height == 0 {
		height = chart.DefaultHeight
	}

	return Config{
		DataPath:    dataPath,
		Unit:        u,
		Addr:        addr,
		Format:      f,
		Width:       width,
		Height:      height,
		Layers:      layers,
		OpenBrowser: openBrowser,
		Debug:       debug,
	}, nil
}

func parseSize(name, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("incorrect '%s' param in yaml config (must be an integer), error: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("incorrect '%s' param in yaml config (must be positive): %d", name, n)
	}
	return n, nil
}
