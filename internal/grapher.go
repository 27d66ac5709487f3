package internal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/vadiminshakov/fuzzgraph/config"
	"github.com/vadiminshakov/fuzzgraph/internal/domain"
	"github.com/vadiminshakov/fuzzgraph/internal/services/chart"
	"github.com/vadiminshakov/fuzzgraph/internal/services/series"
	"github.com/vadiminshakov/fuzzgraph/internal/web"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SnapshotLoader returns the recorded snapshots in file order.
type SnapshotLoader interface {
	Load() ([]domain.BalanceSnapshot, error)
}

// openURL is swapped in tests.
var openURL = browser.OpenURL

// Grapher runs the load, derive and render pipeline for one snapshot file.
type Grapher struct {
	Config   config.Config
	loader   SnapshotLoader
	composer *chart.Composer
	logger   *zap.Logger
	out      io.Writer

	snapshots []domain.BalanceSnapshot
	data      domain.ChartData
	ready     bool
}

// NewGrapher creates a new grapher instance.
func NewGrapher(conf config.Config, loader SnapshotLoader, logger *zap.Logger) *Grapher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Grapher{
		Config:   conf,
		loader:   loader,
		composer: chart.NewComposer(conf.Width, conf.Height),
		logger:   logger,
		out:      os.Stdout,
	}
}

// Prepare loads the snapshots and derives the chart series. It fails before anything is drawn.
func (g *Grapher) Prepare() error {
	snapshots, err := g.loader.Load()
	if err != nil {
		return errors.Wrap(err, "load snapshots")
	}
	g.logger.Debug("snapshots loaded", zap.Int("rounds", len(snapshots)))

	data, err := series.Derive(snapshots, g.Config.Layers)
	if err != nil {
		return errors.Wrap(err, "derive series")
	}

	g.snapshots = snapshots
	g.data = data
	g.ready = true

	g.logger.Info("series derived",
		zap.Int("rounds", len(snapshots)),
		zap.Int("addresses", len(data.Addresses)),
		zap.Int("reward_events", data.Rewards.Len()),
		zap.Bool("total_layer", data.Layers.Total),
		zap.Bool("cumulative_rewards_layer", data.Layers.CumulativeRewards),
	)

	return nil
}

// Data returns the derived series. Valid after Prepare.
func (g *Grapher) Data() domain.ChartData {
	return g.data
}

// RenderChart redraws the chart from the in-memory series.
func (g *Grapher) RenderChart(format chart.Format, w io.Writer) error {
	if !g.ready {
		return errors.New("grapher is not prepared")
	}
	return g.composer.Render(g.data, format, w)
}

// Run prepares the series and serves the chart until ctx is done.
func (g *Grapher) Run(ctx context.Context) error {
	if err := g.Prepare(); err != nil {
		return err
	}

	server := web.NewServer(g.Config.Addr, chart.Title, g.Config.Format, g, g.logger)

	eg, egCtx := errgroup.WithContext(ctx)
	urls := make(chan string, 1)

	eg.Go(func() error {
		defer close(urls)
		return server.Start(egCtx, func(url string) { urls <- url })
	})

	eg.Go(func() error {
		url, ok := <-urls
		if !ok {
			return nil
		}

		fmt.Fprintln(g.out, renderSummary(g.Config.DataPath, url, g.snapshots, g.data))

		if g.Config.OpenBrowser {
			if err := openURL(url); err != nil {
				g.logger.Warn("failed to open browser", zap.String("url", url), zap.Error(err))
			}
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return errors.Wrap(err, "serve chart")
	}
	return nil
}

// ErrorKind classifies pipeline errors for reporting.
func ErrorKind(err error) string {
	var (
		notFound    *domain.NotFoundError
		badFormat   *domain.DataFormatError
		emptySeries *domain.EmptySeriesError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &badFormat):
		return "data_format"
	case errors.As(err, &emptySeries):
		return "empty_series"
	default:
		return "internal"
	}
}
