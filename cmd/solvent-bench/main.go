// Command solvent-bench runs a solver over every .cnf file found under a
// directory and reports per-instance wall times plus a summary. Instances
// run in parallel, each under its own time limit.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/solvent-sat/solvent/solver"
)

type benchResult struct {
	path     string
	status   solver.Status
	duration time.Duration
}

func main() {
	var (
		algorithm string
		branching string
		timeout   time.Duration
		workers   int
	)
	cmd := &cobra.Command{
		Use:           "solvent-bench DIR",
		Short:         "benchmark a solver over a directory of DIMACS files",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSolver(algorithm, branching, timeout)
			if err != nil {
				return err
			}
			return bench(args[0], s, workers)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&algorithm, "algorithm", "cdcl", "solving algorithm: dpll or cdcl")
	flags.StringVar(&branching, "dpll-branching", "DLCS", "branching rule when the algorithm is dpll")
	flags.DurationVar(&timeout, "timeout", 10*time.Second, "per-instance time limit")
	flags.IntVar(&workers, "workers", runtime.NumCPU(), "number of instances solved in parallel")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "solvent-bench: %v\n", err)
		os.Exit(2)
	}
}

func buildSolver(algorithm, branching string, timeout time.Duration) (solver.Interface, error) {
	var inner solver.Interface
	switch algorithm {
	case "dpll":
		rule, err := solver.RuleByName(branching)
		if err != nil {
			return nil, err
		}
		inner = solver.DPLLSolver(rule)
	case "cdcl":
		var err error
		inner, err = solver.CDCL(solver.DefaultOptions())
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("unknown algorithm %q", algorithm)
	}
	return solver.TimeLimited{Inner: inner, Limit: timeout}, nil
}

func bench(dir string, s solver.Interface, workers int) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".cnf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "cannot walk %q", dir)
	}
	if len(paths) == 0 {
		return errors.Errorf("no .cnf file found under %q", dir)
	}
	sort.Strings(paths)

	var (
		mu      sync.Mutex
		results []benchResult
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			pb, err := solver.ParseCNF(f)
			if err != nil {
				return errors.Wrapf(err, "cannot parse %q", path)
			}
			start := time.Now()
			res := s.Solve(ctx, pb)
			elapsed := time.Since(start)
			logrus.WithFields(logrus.Fields{
				"instance": path,
				"status":   res.Status.String(),
				"duration": elapsed,
			}).Info("solved")
			mu.Lock()
			results = append(results, benchResult{path: path, status: res.Status, duration: elapsed})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	byStatus := lo.GroupBy(results, func(r benchResult) solver.Status { return r.status })
	total := lo.SumBy(results, func(r benchResult) time.Duration { return r.duration })
	logrus.WithFields(logrus.Fields{
		"instances": len(results),
		"sat":       len(byStatus[solver.Sat]),
		"unsat":     len(byStatus[solver.Unsat]),
		"unknown":   len(byStatus[solver.Indet]),
		"total":     total,
		"mean":      total / time.Duration(len(results)),
	}).Info("benchmark finished")
	return nil
}
