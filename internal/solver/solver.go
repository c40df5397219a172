// Package solver provides a thin adapter between the ration model and the
// HiGHS LP/MILP solver. Callers describe variables, linear constraints, and
// a minimization objective by variable name; the adapter handles translation
// to and from the solver's column-index representation.
package solver

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bartolsthoorn/gohighs/highs"
	"go.uber.org/zap"
)

// Status is the outcome of a solve, discriminated for the caller.
type Status int

const (
	// NotSolved indicates the solver terminated without a definitive
	// optimal/infeasible/unbounded classification.
	NotSolved Status = iota
	// Optimal indicates an optimal solution was found.
	Optimal
	// Infeasible indicates no feasible point exists.
	Infeasible
	// Unbounded indicates the objective is unbounded below.
	Unbounded
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	default:
		return "NotSolved"
	}
}

// Variable is one decision variable with its objective coefficient and
// bounds. Binary variables are integer-restricted to {0, 1}.
type Variable struct {
	Name   string
	Cost   float64
	Lower  float64
	Upper  float64
	Binary bool
}

// Constraint is one linear constraint Lower <= sum(coeff*x) <= Upper,
// with coefficients keyed by variable name. Equality constraints set
// Lower == Upper; one-sided constraints use math.Inf.
type Constraint struct {
	Name         string
	Coefficients map[string]float64
	Lower        float64
	Upper        float64
}

// Problem is a complete minimization problem.
type Problem struct {
	Variables   []Variable
	Constraints []Constraint
}

// Result carries the solve outcome. Values and Objective are populated
// only when Status is Optimal.
type Result struct {
	Status    Status
	Values    map[string]float64
	Objective float64
}

// Solve runs a single deterministic solve of the problem. A context
// deadline, when present, is imposed on the solver as a time limit; a solve
// cut off by the time limit reports NotSolved. Problems without binary
// variables are plain LPs and take the same path.
func Solve(ctx context.Context, logger *zap.Logger, prob Problem) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	index := make(map[string]int, len(prob.Variables))
	model := highs.Model{
		ColCosts: make([]float64, len(prob.Variables)),
		ColLower: make([]float64, len(prob.Variables)),
		ColUpper: make([]float64, len(prob.Variables)),
	}

	hasBinary := false
	for i, v := range prob.Variables {
		if _, ok := index[v.Name]; ok {
			return Result{}, fmt.Errorf("duplicate variable %q", v.Name)
		}
		index[v.Name] = i
		model.ColCosts[i] = v.Cost
		model.ColLower[i] = v.Lower
		model.ColUpper[i] = v.Upper
		if v.Binary {
			hasBinary = true
		}
	}
	if hasBinary {
		model.VarTypes = make([]highs.VariableType, len(prob.Variables))
		for i, v := range prob.Variables {
			if v.Binary {
				model.VarTypes[i] = highs.Integer
			}
		}
	}

	for _, c := range prob.Constraints {
		cols := make([]int, 0, len(c.Coefficients))
		vals := make([]float64, 0, len(c.Coefficients))
		for name, coeff := range c.Coefficients {
			col, ok := index[name]
			if !ok {
				return Result{}, fmt.Errorf("constraint %q references unknown variable %q", c.Name, name)
			}
			cols = append(cols, col)
			vals = append(vals, coeff)
		}
		model.AddSparseRow(c.Lower, cols, vals, c.Upper)
	}

	opts := []highs.SolveOption{highs.WithOutput(false)}
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline).Seconds()
		if remaining <= 0 {
			return Result{}, context.DeadlineExceeded
		}
		opts = append(opts, highs.WithTimeLimit(remaining))
	}

	logger.Debug(fmt.Sprintf("solving model with %d variables and %d constraints", len(prob.Variables), len(prob.Constraints)),
		zap.String("op", "solver.Solve"),
		zap.Bool("mip", hasBinary),
	)

	solution, err := model.Solve(opts...)
	if err != nil {
		return Result{}, fmt.Errorf("solver failed, %s", err)
	}

	result := Result{Status: statusFromModel(solution.Status)}
	if result.Status != Optimal {
		logger.Debug(fmt.Sprintf("solve finished without optimum: %s", solution.Status),
			zap.String("op", "solver.Solve"),
		)
		return result, nil
	}

	result.Objective = solution.Objective
	result.Values = make(map[string]float64, len(prob.Variables))
	for name, col := range index {
		result.Values[name] = solution.Value(col)
	}
	return result, nil
}

// statusFromModel collapses the solver's detailed model status onto the
// four outcomes the caller distinguishes. UnboundedOrInfeasible is treated
// as infeasible since bounded variables make true unboundedness impossible
// unless the configuration is defective.
func statusFromModel(status highs.ModelStatus) Status {
	switch status {
	case highs.ModelStatusOptimal:
		return Optimal
	case highs.ModelStatusInfeasible, highs.ModelStatusUnboundedOrInfeasible:
		return Infeasible
	case highs.ModelStatusUnbounded:
		return Unbounded
	default:
		return NotSolved
	}
}

// Inf returns positive infinity for one-sided constraint bounds.
func Inf() float64 { return math.Inf(1) }

// NegInf returns negative infinity for one-sided constraint bounds.
func NegInf() float64 { return math.Inf(-1) }
