// Command unions benchmarks the ZDD engine's union operation over a
// random workload of sets drawn from a shared universe, optionally
// configured by a JSON workload file.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xeipuuv/gojsonschema"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	pb "gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/gozdd/ydd/internal/telemetry"
	"github.com/gozdd/ydd/key"
	"github.com/gozdd/ydd/zdd"
)

// workloadSchema validates an optional --workload JSON document before
// any engine work starts.
const workloadSchema = `{
  "type": "object",
  "properties": {
    "seed":          {"type": "integer"},
    "sets":          {"type": "integer", "minimum": 1},
    "universe":      {"type": "integer", "minimum": 1},
    "min_set_size":  {"type": "integer", "minimum": 0},
    "max_set_size":  {"type": "integer", "minimum": 0}
  },
  "required": ["sets", "universe"],
  "additionalProperties": false
}`

type workload struct {
	Seed       int64 `json:"seed"`
	Sets       int   `json:"sets"`
	Universe   int   `json:"universe"`
	MinSetSize int   `json:"min_set_size"`
	MaxSetSize int   `json:"max_set_size"`
}

func main() {
	app := cli.NewApp()
	app.Name = "unions"
	app.Usage = "benchmark repeated ZDD union over a random workload"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "sets, s", Value: 1000, Usage: "number of random sets to union together"},
		cli.IntFlag{Name: "universe, e", Value: 256, Usage: "size of the element universe each set is drawn from"},
		cli.Int64Flag{Name: "seed", Value: 1, Usage: "random seed"},
		cli.StringFlag{Name: "workload", Usage: "JSON file overriding sets/universe/seed/set-size bounds"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("unions failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	w := workload{
		Seed:       ctx.Int64("seed"),
		Sets:       ctx.Int("sets"),
		Universe:   ctx.Int("universe"),
		MinSetSize: 0,
		MaxSetSize: 0,
	}

	if path := ctx.String("workload"); path != "" {
		loaded, err := loadWorkload(path)
		if err != nil {
			return err
		}
		w = *loaded
	}
	if w.MaxSetSize == 0 {
		w.MaxSetSize = w.Universe / 4
		if w.MaxSetSize == 0 {
			w.MaxSetSize = 1
		}
	}

	registry := prometheus.NewRegistry()
	provider, err := telemetry.New("unions", registry)
	if err != nil {
		return errors.Wrap(err, "unions: set up telemetry")
	}
	defer provider.Shutdown(context.Background())

	engine := zdd.New[int](key.Ordered[int]{}, zdd.WithMeter[int](provider.Meter))
	rng := rand.New(rand.NewSource(w.Seed))

	// Draw the random sets up front; only diagram construction and
	// union are timed.
	sets := make([][]int, w.Sets)
	for i := range sets {
		sets[i] = randomSet(rng, w.Universe, w.MinSetSize, w.MaxSetSize)
	}

	bar := pb.StartNew(w.Sets)
	defer bar.Finish()

	_, span := provider.Tracer.Start(context.Background(), "unions.workload")
	defer span.End()

	benchmarkStart := time.Now()

	singletonStart := time.Now()
	diagrams := make([]*zdd.Node[int], w.Sets)
	for i, s := range sets {
		diagrams[i] = engine.FromSlice(s)
		bar.Increment()
	}
	singletonTime := time.Since(singletonStart)

	unionStart := time.Now()
	acc := engine.Terminal(false)
	for _, d := range diagrams {
		acc = engine.Union(acc, d)
	}
	unionTime := time.Since(unionStart)

	benchmarkTime := time.Since(benchmarkStart)

	count := engine.Cardinality(acc)
	logger.Info("union workload computed",
		"sets", w.Sets, "universe", w.Universe, "distinct_sets", count,
		"total_time", benchmarkTime, "singleton_time", singletonTime, "union_time", unionTime,
		"nodes_created", engine.NodesCreated(),
	)

	printer := message.NewPrinter(language.English)
	printer.Printf("%-20s %s\n", "Total time:", benchmarkTime)
	printer.Printf("%-20s %s\n", "Create singletons:", singletonTime)
	printer.Printf("%-20s %s\n", "Compute unions:", unionTime)
	return nil
}

func loadWorkload(path string) (*workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unions: read workload %s", path)
	}

	schemaLoader := gojsonschema.NewStringLoader(workloadSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, errors.Wrapf(err, "unions: validate workload %s", path)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, errors.Errorf("unions: invalid workload %s: %s", path, strings.Join(msgs, "; "))
	}

	var w workload
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrapf(err, "unions: decode workload %s", path)
	}
	return &w, nil
}

func randomSet(rng *rand.Rand, universe, minSize, maxSize int) []int {
	if maxSize < minSize {
		maxSize = minSize
	}
	size := minSize
	if maxSize > minSize {
		size += rng.Intn(maxSize - minSize + 1)
	}
	if size > universe {
		size = universe
	}

	seen := make(map[int]bool, size)
	set := make([]int, 0, size)
	for len(set) < size {
		v := rng.Intn(universe)
		if seen[v] {
			continue
		}
		seen[v] = true
		set = append(set, v)
	}
	return set
}
