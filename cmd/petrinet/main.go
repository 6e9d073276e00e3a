// Command petrinet computes the reachable state space of a 1-safe
// Petri net described in PNML, reporting the number of reachable
// markings and the time taken.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/gozdd/ydd/internal/telemetry"
	"github.com/gozdd/ydd/key"
	"github.com/gozdd/ydd/petrinet"
	"github.com/gozdd/ydd/zdd"
)

func main() {
	app := cli.NewApp()
	app.Name = "petrinet"
	app.Usage = "compute the reachable state space of a 1-safe Petri net"
	app.ArgsUsage = "<pnml-file>"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "recursion-limit, r",
			Usage: "bound the binary-operation engine's recursion depth (0: unlimited)",
		},
		cli.StringFlag{
			Name:  "metrics-addr",
			Usage: "if set, serve Prometheus metrics on this address until the computation completes",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("petrinet failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	path := ctx.Args().First()
	if path == "" {
		return errors.New("petrinet: missing required <pnml-file> argument")
	}

	registry := prometheus.NewRegistry()
	provider, err := telemetry.New("petrinet", registry)
	if err != nil {
		return errors.Wrap(err, "petrinet: set up telemetry")
	}
	defer provider.Shutdown(context.Background())

	if addr := ctx.String("metrics-addr"); addr != "" {
		srv := &http.Server{Addr: addr, Handler: provider.Handler}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics server stopped", "err", err)
			}
		}()
		defer srv.Close()
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "petrinet: open %s", path)
	}
	defer file.Close()

	opts := []zdd.Option[int]{zdd.WithMeter[int](provider.Meter)}
	if n := ctx.Int("recursion-limit"); n > 0 {
		opts = append(opts, zdd.WithRecursionLimit[int](n))
	}
	engine := zdd.New[int](key.Ordered[int]{}, opts...)

	nets, err := petrinet.ParsePNML(engine, file)
	if err != nil {
		return errors.Wrapf(err, "petrinet: parse %s", path)
	}

	ids := make([]string, 0, len(nets))
	for id := range nets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	printer := message.NewPrinter(language.English)
	for _, id := range ids {
		net := nets[id]
		_, span := provider.Tracer.Start(context.Background(), "petrinet.StateSpace")
		start := time.Now()
		states := net.StateSpace()
		elapsed := time.Since(start)
		span.End()

		count := engine.Cardinality(states)
		logger.Info("state space computed",
			"net", id,
			"states", count,
			"elapsed", elapsed,
		)
		printer.Printf("%s: %d state(s), computed in %s\n", id, count, elapsed)
	}
	return nil
}
