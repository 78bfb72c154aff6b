package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/propertyparty/property"
	"github.com/fatih/color"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

const (
	widthsKey  = "widths"
	heightsKey = "heights"
	itersKey   = "iters"
	profileKey = "cpuprofile"
	noColorKey = "no-color"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure propagation through width x height binding chains",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  widthsKey,
				Usage: "Number of chains hanging off the source",
				Value: []string{"1", "10", "100", "1000"},
			},
			&cli.StringSliceFlag{
				Name:  heightsKey,
				Usage: "Number of bindings in each chain",
				Value: []string{"1", "10", "100", "1000"},
			},
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes to the source per shape",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
				Value: "default.pgo",
			},
			&cli.BoolFlag{
				Name:  noColorKey,
				Usage: "Disable colored output",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func parseSizes(values []string) ([]int, error) {
	sizes := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", v, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("invalid size %d, must be positive", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	ww, err := parseSizes(cmd.StringSlice(widthsKey))
	if err != nil {
		return err
	}
	hh, err := parseSizes(cmd.StringSlice(heightsKey))
	if err != nil {
		return err
	}
	iters := int(cmd.Int(itersKey))

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	terminal := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if cmd.Bool(noColorKey) {
		color.NoColor = true
	}

	log.Printf("warming up")
	benchmarkPropagation(ww[:1], hh[:1], iters, nil)

	tbl := table.NewWriter()
	tbl.SetTitle("Property propagation")
	tbl.SetOutputMirror(os.Stdout)
	if terminal && !color.NoColor {
		tbl.SetStyle(table.StyleColoredBright)
	} else {
		tbl.SetStyle(table.StyleLight)
	}
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "evaluations", "checksum"})

	failed := benchmarkPropagation(ww, hh, iters, tbl)
	tbl.Render()

	if failed > 0 {
		color.New(color.FgRed, color.Bold).Printf("%d shapes produced wrong leaf values\n", failed)
		return fmt.Errorf("%d shapes failed verification", failed)
	}
	color.New(color.FgGreen).Printf("all %d shapes verified\n", len(ww)*len(hh))
	return nil
}

// benchmarkPropagation builds w chains of h bindings over one source and
// times writes to the source, each write re-evaluating the dirty chain ends.
// It returns how many shapes computed wrong values.
func benchmarkPropagation(ww, hh []int, iters int, tbl table.Writer) (failed int) {
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := property.NewRuntime()
			src := property.New(rt, 1)

			var dirty []int
			leaves := make([]*property.Property[int], w)
			trackers := make([]*property.Tracker, w)
			for i := 0; i < w; i++ {
				i := i
				last := src
				for j := 0; j < h; j++ {
					prev := last
					last = property.NewBinding(rt, func() int {
						return prev.Get() + 1
					})
				}
				leaves[i] = last
				trackers[i] = property.NewTrackerWithDirtyHandler(rt, func() {
					dirty = append(dirty, i)
				})
				property.Evaluate(trackers[i], last.Get)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Get() + 1)
				for _, d := range dirty {
					property.Evaluate(trackers[d], leaves[d].Get)
				}
				dirty = dirty[:0]
				tach.AddTime(time.Since(start))
			}

			want := src.Get() + h
			digest := xxhash.New()
			ok := true
			for _, leaf := range leaves {
				v := leaf.Get()
				if v != want {
					ok = false
				}
				digest.WriteString(strconv.Itoa(v))
			}
			if !ok {
				failed++
				log.Printf("propagate %d * %d: leaves do not all equal %d", w, h, want)
			}

			if tbl == nil {
				continue
			}
			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
					rt.Stats().Evaluations,
					fmt.Sprintf("%016x", digest.Sum64()),
				},
			})
		}
	}
	return failed
}
