// Command solvent decides the satisfiability of a DIMACS CNF formula.
// It prints SAT together with a model, UNSAT, or UNKNOWN when the solve
// was cancelled or timed out.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/solvent-sat/solvent/oracle"
	"github.com/solvent-sat/solvent/preprocess"
	"github.com/solvent-sat/solvent/solver"
)

// settings holds every tunable of the command. The same shape can be
// provided as a YAML file through --config; explicitly set flags win over
// the file.
type settings struct {
	Input         string        `mapstructure:"input"`
	Algorithm     string        `mapstructure:"algorithm"`
	DPLLBranching string        `mapstructure:"dpll-branching"`
	CDCLBranching string        `mapstructure:"cdcl-branching"`
	CDCLRestart   string        `mapstructure:"cdcl-restart"`
	CDCLDeletion  string        `mapstructure:"cdcl-deletion"`
	CDCLLearning  string        `mapstructure:"cdcl-learning"`
	CDCLPreproc   []string      `mapstructure:"cdcl-preproc"`
	Drup          string        `mapstructure:"drup"`
	Timeout       time.Duration `mapstructure:"timeout"`
	ReturnCode    bool          `mapstructure:"return-code"`
	Verbose       bool          `mapstructure:"verbose"`
}

func main() {
	cfg := settings{}
	var configPath string
	cmd := &cobra.Command{
		Use:           "solvent",
		Short:         "solvent is a SAT solver for DIMACS CNF formulas",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := mergeConfigFile(cmd, &cfg, configPath); err != nil {
					return err
				}
			}
			status, err := run(&cfg)
			if err != nil {
				return err
			}
			if cfg.ReturnCode && status == solver.Sat {
				os.Exit(1)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&cfg.Input, "input", "i", "", "input file (stdin if absent)")
	flags.StringVar(&cfg.Algorithm, "algorithm", "cdcl", "solving algorithm: bruteforce, gini, dpll or cdcl")
	flags.StringVar(&cfg.DPLLBranching, "dpll-branching", "DLCS", "DPLL branching rule: naive, DLIS, DLCS, MOM or Jeroslaw-Wang")
	flags.StringVar(&cfg.CDCLBranching, "cdcl-branching", "VSIDS", "CDCL branching heuristic (only VSIDS is supported)")
	flags.StringVar(&cfg.CDCLRestart, "cdcl-restart", "luby", "CDCL restart policy: fixed, geom, luby, lbd or never")
	flags.StringVar(&cfg.CDCLDeletion, "cdcl-deletion", "berk-min", "CDCL clause deletion policy: berk-min or never")
	flags.StringVar(&cfg.CDCLLearning, "cdcl-learning", "relsat", "CDCL learning scheme (only relsat is supported)")
	flags.StringSliceVar(&cfg.CDCLPreproc, "cdcl-preproc", nil, "preprocessing steps applied in order, from: tautologies, niver")
	flags.StringVar(&cfg.Drup, "drup", "", "write a DRUP refutation trace to this file (CDCL only)")
	flags.DurationVar(&cfg.Timeout, "timeout", 0, "wall-clock budget; past it the solver reports UNKNOWN")
	flags.BoolVarP(&cfg.ReturnCode, "return-code", "r", false, "exit with code 1 when SAT, 0 otherwise")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "log solving progress")
	flags.StringVar(&configPath, "config", "", "YAML file providing defaults for the other flags")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "solvent: %v\n", err)
		if cfg.ReturnCode {
			os.Exit(0)
		}
		os.Exit(2)
	}
}

// mergeConfigFile reads a YAML settings file and adopts its values for
// every flag the user did not set explicitly.
func mergeConfigFile(cmd *cobra.Command, cfg *settings, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "cannot read config file")
	}
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return errors.Wrapf(err, "cannot parse config file %q", path)
	}
	var fromFile settings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fromFile,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return errors.Wrapf(err, "invalid config file %q", path)
	}
	for name, adopt := range map[string]func(){
		"input":          func() { cfg.Input = fromFile.Input },
		"algorithm":      func() { cfg.Algorithm = fromFile.Algorithm },
		"dpll-branching": func() { cfg.DPLLBranching = fromFile.DPLLBranching },
		"cdcl-branching": func() { cfg.CDCLBranching = fromFile.CDCLBranching },
		"cdcl-restart":   func() { cfg.CDCLRestart = fromFile.CDCLRestart },
		"cdcl-deletion":  func() { cfg.CDCLDeletion = fromFile.CDCLDeletion },
		"cdcl-learning":  func() { cfg.CDCLLearning = fromFile.CDCLLearning },
		"cdcl-preproc":   func() { cfg.CDCLPreproc = fromFile.CDCLPreproc },
		"drup":           func() { cfg.Drup = fromFile.Drup },
		"timeout":        func() { cfg.Timeout = fromFile.Timeout },
		"return-code":    func() { cfg.ReturnCode = fromFile.ReturnCode },
		"verbose":        func() { cfg.Verbose = fromFile.Verbose },
	} {
		if _, ok := raw[name]; ok && !cmd.Flags().Changed(name) {
			adopt()
		}
	}
	return nil
}

func (cfg *settings) validate() error {
	switch cfg.Algorithm {
	case "bruteforce", "gini", "dpll", "cdcl":
	default:
		return errors.Errorf("unknown algorithm %q", cfg.Algorithm)
	}
	if cfg.Algorithm != "cdcl" {
		if cfg.Drup != "" {
			return errors.Errorf("--drup requires --algorithm=cdcl, not %q", cfg.Algorithm)
		}
		if len(cfg.CDCLPreproc) > 0 {
			return errors.Errorf("--cdcl-preproc requires --algorithm=cdcl, not %q", cfg.Algorithm)
		}
	}
	if !strings.EqualFold(cfg.CDCLBranching, "VSIDS") {
		return errors.Errorf("unknown CDCL branching heuristic %q", cfg.CDCLBranching)
	}
	return nil
}

func run(cfg *settings) (solver.Status, error) {
	if err := cfg.validate(); err != nil {
		return solver.Indet, err
	}
	in := io.Reader(os.Stdin)
	if cfg.Input != "" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return solver.Indet, errors.Wrapf(err, "cannot open %q", cfg.Input)
		}
		defer f.Close()
		in = f
	}
	clauses, nbVars, err := solver.ParseDimacs(in)
	if err != nil {
		return solver.Indet, errors.Wrap(err, "cannot parse input")
	}
	chain, err := preprocess.NewChain(cfg.CDCLPreproc)
	if err != nil {
		return solver.Indet, err
	}
	clauses = chain.Apply(clauses, nbVars)
	pb := parseProblem(clauses, nbVars)

	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
		logrus.WithFields(logrus.Fields{
			"algorithm": cfg.Algorithm,
			"vars":      nbVars,
			"clauses":   len(clauses),
		}).Info("solving")
	}
	res, err := dispatch(ctx, cfg, pb)
	if err != nil {
		return solver.Indet, err
	}
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	switch res.Status {
	case solver.Sat:
		model := chain.Restore(res.Model)
		fmt.Fprintln(out, "SAT")
		for v, val := range model {
			if val {
				fmt.Fprintf(out, "%d ", v+1)
			} else {
				fmt.Fprintf(out, "%d ", -(v + 1))
			}
		}
		fmt.Fprintln(out, "0")
	case solver.Unsat:
		fmt.Fprintln(out, "UNSAT")
	default:
		fmt.Fprintln(out, "UNKNOWN")
	}
	return res.Status, nil
}

// parseProblem builds a Problem, keeping the declared number of variables
// even when the highest ones do not occur in any clause.
func parseProblem(clauses [][]int, nbVars int) *solver.Problem {
	pb := solver.ParseSlice(clauses)
	if pb.NbVars < nbVars {
		pb.Grow(nbVars)
	}
	return pb
}

func dispatch(ctx context.Context, cfg *settings, pb *solver.Problem) (solver.Result, error) {
	switch cfg.Algorithm {
	case "bruteforce":
		return solver.Bruteforce{}.Solve(ctx, pb), nil
	case "gini":
		return oracle.Gini{}.Solve(ctx, pb), nil
	case "dpll":
		rule, err := solver.RuleByName(cfg.DPLLBranching)
		if err != nil {
			return solver.Result{}, err
		}
		s := solver.NewDPLL(pb, rule)
		s.Verbose = cfg.Verbose
		s.SolveContext(ctx)
		return s.Result(), nil
	default: // cdcl
		opts := solver.Options{
			Restart:  solver.RestartStrategy(cfg.CDCLRestart),
			Deletion: solver.DeletionStrategy(cfg.CDCLDeletion),
			Learning: solver.LearningStrategy(cfg.CDCLLearning),
		}
		s, err := solver.NewWithOptions(pb, opts)
		if err != nil {
			return solver.Result{}, err
		}
		s.Verbose = cfg.Verbose
		if cfg.Drup != "" {
			f, err := os.Create(cfg.Drup)
			if err != nil {
				return solver.Result{}, errors.Wrapf(err, "cannot create DRUP file %q", cfg.Drup)
			}
			defer f.Close()
			done := make(chan struct{})
			w := bufio.NewWriter(f)
			s.Certified = true
			s.CertChan = make(chan string)
			go func() {
				defer close(done)
				for line := range s.CertChan {
					fmt.Fprintln(w, line)
				}
				w.Flush()
			}()
			s.SolveContext(ctx)
			close(s.CertChan)
			<-done
			return s.Result(), nil
		}
		s.SolveContext(ctx)
		return s.Result(), nil
	}
}
