package rules

import (
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// Verdict is one rule that matched an edit.
type Verdict struct {
	RuleID string `json:"rule_id"`
	Action string `json:"action"`
}

// Engine compiles rule conditions once and evaluates them against
// every edit of a comparison.
type Engine struct {
	env      *cel.Env
	order    []string
	programs map[string]compiled
}

type compiled struct {
	program cel.Program
	action  string
}

// NewEngine initializes the CEL environment with the edit variables a
// rule condition may reference.
func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("op", decls.String),
			decls.NewVar("left", decls.String),
			decls.NewVar("right", decls.String),
			decls.NewVar("page", decls.Int),
			decls.NewVar("similarity", decls.Double),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	return &Engine{
		env:      env,
		programs: make(map[string]compiled),
	}, nil
}

// Compile compiles the rules into executable programs. Compilation
// errors stop the load; a broken rule file should never half-apply.
func (e *Engine) Compile(rules []Rule) error {
	for _, r := range rules {
		ast, issues := e.env.Compile(r.When)
		if issues != nil && issues.Err() != nil {
			return fmt.Errorf("rule %s compilation error: %w", r.ID, issues.Err())
		}

		prg, err := e.env.Program(ast)
		if err != nil {
			return fmt.Errorf("rule %s program creation error: %w", r.ID, err)
		}

		e.programs[r.ID] = compiled{program: prg, action: r.Action}
		e.order = append(e.order, r.ID)
	}
	return nil
}

// Evaluate runs every compiled rule against one edit's variables and
// returns the matches in rule order. A rule whose evaluation fails is
// skipped; the rest still run.
func (e *Engine) Evaluate(vars map[string]interface{}) []Verdict {
	var verdicts []Verdict
	for _, id := range e.order {
		c := e.programs[id]
		out, _, err := c.program.Eval(vars)
		if err != nil {
			slog.Error("rule evaluation failed", "rule_id", id, "error", err)
			continue
		}
		if match, ok := out.Value().(bool); ok && match {
			verdicts = append(verdicts, Verdict{RuleID: id, Action: c.action})
		}
	}
	return verdicts
}

// Ignored reports whether any verdict suppresses the edit outright.
func Ignored(verdicts []Verdict) bool {
	for _, v := range verdicts {
		if v.Action == ActionIgnore {
			return true
		}
	}
	return false
}
