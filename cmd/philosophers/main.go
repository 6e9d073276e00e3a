// Command philosophers computes the reachable state space of the
// dining-philosophers Petri net for a given number of philosophers.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/gozdd/ydd/internal/telemetry"
	"github.com/gozdd/ydd/petrinet"
	"github.com/gozdd/ydd/zdd"
)

func main() {
	app := cli.NewApp()
	app.Name = "philosophers"
	app.Usage = "compute the reachable state space of the dining-philosophers net"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "philosophers, n",
			Value: 3,
			Usage: "the number of philosophers",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("philosophers failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	n := ctx.Int("philosophers")
	if n <= 0 {
		return errors.Errorf("philosophers: -n must be positive, got %d", n)
	}

	registry := prometheus.NewRegistry()
	provider, err := telemetry.New("philosophers", registry)
	if err != nil {
		return errors.Wrap(err, "philosophers: set up telemetry")
	}
	defer provider.Shutdown(context.Background())

	engine := zdd.New[petrinet.Place](petrinet.PlaceOps, zdd.WithMeter[petrinet.Place](provider.Meter))
	net := petrinet.NewPhilosophers(engine, n)

	_, span := provider.Tracer.Start(context.Background(), "philosophers.StateSpace")
	start := time.Now()
	states := net.StateSpace()
	elapsed := time.Since(start)
	span.End()

	count := engine.Cardinality(states)
	logger.Info("state space computed", "philosophers", n, "states", count, "elapsed", elapsed)

	printer := message.NewPrinter(language.English)
	printer.Printf("Result of computation for %d philosophers:\n", n)
	printer.Printf("\t%d state(s), computed in %s\n", count, elapsed)
	return nil
}
