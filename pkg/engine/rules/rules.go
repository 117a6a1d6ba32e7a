// Package rules loads user-defined diff filtering rules from HCL files
// and evaluates them as CEL expressions against individual edits. Rules
// let a reviewer suppress known-noisy differences (page numbers, dates,
// revision stamps) without touching the comparison itself.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Rule actions, in increasing severity.
const (
	ActionIgnore = "ignore" // drop the edit from the result
	ActionWarn   = "warn"   // keep the edit, mark it low confidence
	ActionFlag   = "flag"   // keep the edit, mark it for review
)

// Rule is one user-defined filter.
type Rule struct {
	ID     string `json:"id"`
	When   string `json:"when"`   // CEL expression over the edit variables
	Action string `json:"action"` // ignore, warn, or flag
}

var ruleFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "rule", LabelNames: []string{"id"}},
	},
}

var ruleBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "when", Required: true},
		{Name: "action", Required: false},
	},
}

// LoadFile parses one .hcl rules file.
func LoadFile(path string) ([]Rule, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", path, diags)
	}
	return rulesFromFile(file, path)
}

// LoadDir parses every .hcl file in dir. A missing directory yields an
// empty rule set, not an error.
func LoadDir(dir string) ([]Rule, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rules dir %s: %w", dir, err)
	}

	var all []Rule
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".hcl") {
			continue
		}
		rules, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		all = append(all, rules...)
	}
	return all, nil
}

func rulesFromFile(f *hcl.File, path string) ([]Rule, error) {
	content, diags := f.Body.Content(ruleFileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %w", path, diags)
	}

	var rules []Rule
	seen := make(map[string]bool)
	for _, block := range content.Blocks {
		id := block.Labels[0]
		if seen[id] {
			return nil, fmt.Errorf("%s: duplicate rule %q", path, id)
		}
		seen[id] = true

		body, diags := block.Body.Content(ruleBodySchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: rule %q: %w", path, id, diags)
		}

		r := Rule{ID: id, Action: ActionIgnore}
		if attr, ok := body.Attributes["when"]; ok {
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%s: rule %q: when: %w", path, id, diags)
			}
			if v.Type() != cty.String {
				return nil, fmt.Errorf("%s: rule %q: when must be a string", path, id)
			}
			r.When = v.AsString()
		}
		if attr, ok := body.Attributes["action"]; ok {
			v, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%s: rule %q: action: %w", path, id, diags)
			}
			if v.Type() != cty.String {
				return nil, fmt.Errorf("%s: rule %q: action must be a string", path, id)
			}
			r.Action = v.AsString()
		}
		switch r.Action {
		case ActionIgnore, ActionWarn, ActionFlag:
		default:
			return nil, fmt.Errorf("%s: rule %q: unknown action %q", path, id, r.Action)
		}

		rules = append(rules, r)
	}
	return rules, nil
}
