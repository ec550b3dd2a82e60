// Command dlsimplex drives the simplex engine against a small
// bounds-problem text file and reports SAT/UNSAT, replacing gophersat's
// flag-based main.go (removed from this repository; see DESIGN.md)
// with a github.com/spf13/cobra command tree, the way the
// pack's richer services (AleutianFOSS, operator-lifecycle-manager) both
// build their own CLIs.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gophersimplex/gophersimplex/config"
	"github.com/gophersimplex/gophersimplex/problem"
	"github.com/gophersimplex/gophersimplex/simplex"
	"github.com/gophersimplex/gophersimplex/termset"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dlsimplex",
		Short: "Decide satisfiability of a linear-arithmetic bounds problem",
	}
	root.AddCommand(newSolveCmd())
	return root
}

func newSolveCmd() *cobra.Command {
	var approxCheck bool
	cmd := &cobra.Command{
		Use:   "solve <problem-file>",
		Short: "Solve a bounds-problem file and print SAT/UNSAT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return &config.ErrMalformedOption{Key: "config file", Reason: err.Error(), Err: err}
			}
			if !cmd.Flags().Changed("approx-check") {
				approxCheck = config.Global.EnableApproxCrossCheck
			}
			return runSolve(args[0], approxCheck)
		},
	}
	cmd.Flags().BoolVar(&approxCheck, "approx-check", false, "run the gonum-backed approximate tableau cross-check after solving (default: config's enable_approx_cross_check)")
	return cmd
}

func runSolve(path string, approxCheck bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := problem.Parse(f)
	if err != nil {
		return err
	}

	log, err := buildLogger(config.Global.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	var registerer prometheus.Registerer
	if config.Global.MetricsEnabled {
		registerer = prometheus.NewRegistry()
	}
	stats := simplex.NewStats(registerer)

	varIDs := make(map[string]simplex.ArithVar, len(p.Vars))
	for i, name := range p.Vars {
		varIDs[name] = simplex.ArithVar(i)
	}

	sink := &printingSink{}
	engine := simplex.NewEngine(len(p.Vars), config.Global.GriggioQueueCapacityHint, sink, termset.Factory{}, stats, log)

	for _, row := range p.Rows {
		coeffs := make(map[simplex.ArithVar]simplex.Rational, len(row.Vars))
		for i, v := range row.Vars {
			coeffs[varIDs[v]] = row.Coeffs[i]
		}
		engine.Tableau().SetRow(simplex.NewReducedRow(varIDs[row.Basic], coeffs))
	}

	for _, a := range p.Assertions {
		v, ok := varIDs[a.Var]
		if !ok {
			return &config.ErrUnknownOption{Key: a.Var}
		}
		term := termset.NewBound(a.Var, assertKindName(a.Kind), a.Literal)
		var conflicted bool
		switch a.Kind {
		case problem.AssertLower:
			conflicted = engine.AssertLower(v, a.Value, term)
		case problem.AssertUpper:
			conflicted = engine.AssertUpper(v, a.Value, term)
		case problem.AssertEquality:
			conflicted = engine.AssertEquality(v, a.Value, term)
		}
		if conflicted {
			fmt.Println("UNSAT")
			fmt.Println(sink.conflicts[len(sink.conflicts)-1])
			return nil
		}
	}

	conflict, found := engine.UpdateInconsistentVars(context.Background())
	if approxCheck {
		engine.ApproxCheckTableau(log, 1e-6)
	}
	if found {
		fmt.Println("UNSAT")
		fmt.Println(conflict)
		return nil
	}

	fmt.Println("SAT")
	for _, name := range p.Vars {
		fmt.Printf("%s = %s\n", name, engine.Model().Assignment(varIDs[name], false))
	}
	fmt.Printf("pivots=%d updates=%d\n", stats.Pivots, stats.Updates)
	return nil
}

func assertKindName(k problem.AssertKind) string {
	switch k {
	case problem.AssertLower:
		return "lower"
	case problem.AssertUpper:
		return "upper"
	default:
		return "eq"
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, &config.ErrMalformedOption{Key: "log_level", Reason: err.Error(), Err: err}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// printingSink is the ConflictSink for the CLI: it just remembers nodes
// so runSolve can print the most recent one.
type printingSink struct {
	conflicts []simplex.Term
}

func (s *printingSink) Conflict(node simplex.Term) {
	s.conflicts = append(s.conflicts, node)
}
