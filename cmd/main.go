// Command fuzzgraph charts the balance snapshots recorded by a fuzz-testing run.
// It reads the snapshot file, derives per-address, contract, average and reward
// series, and serves the composed chart on a local page.
//
// Usage:
//
//	fuzzgraph                         (reads balanceData.json next to the binary)
//	fuzzgraph --data run.json --open
//	fuzzgraph --config fuzzgraph.yaml
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/vadiminshakov/fuzzgraph/config"
	"github.com/vadiminshakov/fuzzgraph/internal"
	"github.com/vadiminshakov/fuzzgraph/internal/storage/snapshotfile"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(conf.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := snapshotfile.NewStore(conf.DataPath, conf.Unit)
	grapher := internal.NewGrapher(conf, store, logger)

	if err := grapher.Run(ctx); err != nil {
		logger.Fatal("failed to chart balances",
			zap.String("kind", internal.ErrorKind(err)),
			zap.String("data", conf.DataPath),
			zap.Error(err),
		)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
