package plan

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// hclBatchFile is the top-level structure of a .hcl batch file.
type hclBatchFile struct {
	Plan  *hclPlanBlock   `hcl:"plan,block"`
	Tasks []*hclTaskBlock `hcl:"task,block"`
}

type hclPlanBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
}

type hclTaskBlock struct {
	ID        string   `hcl:"id,label"`
	Name      string   `hcl:"name,optional"`
	Hours     float64  `hcl:"hours"`
	DependsOn []string `hcl:"depends_on,optional"`
}

// evalContext exposes the calendar units to attribute expressions, so an
// estimate can be written as "2 * day" or "max(week / 2, 4)".
func evalContext(hoursPerDay float64) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"day":  cty.NumberFloatVal(hoursPerDay),
			"week": cty.NumberFloatVal(hoursPerDay * 5),
		},
		Functions: map[string]function.Function{
			"max":   stdlib.MaxFunc,
			"min":   stdlib.MinFunc,
			"ceil":  stdlib.CeilFunc,
			"floor": stdlib.FloorFunc,
		},
	}
}

// ParseHCL decodes a batch written as HCL:
//
//	plan "launch" {
//	  description = "Website launch"
//	}
//
//	task "T1" {
//	  name  = "Research"
//	  hours = 2 * day
//	}
//
//	task "T2" {
//	  name       = "Draft"
//	  hours      = 4
//	  depends_on = ["T1"]
//	}
func ParseHCL(src []byte, filename string, opts LoadOptions) (*Batch, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclBatchFile
	diags = gohcl.DecodeBody(file.Body, evalContext(opts.hoursPerDay()), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	b := &Batch{Tasks: make([]Task, 0, len(parsed.Tasks))}
	if parsed.Plan != nil {
		b.Name = parsed.Plan.Name
		b.Description = parsed.Plan.Description
	}
	for _, t := range parsed.Tasks {
		b.Tasks = append(b.Tasks, Task{
			ID:             t.ID,
			Name:           t.Name,
			EstimatedHours: t.Hours,
			DependsOn:      t.DependsOn,
		})
	}
	return b, nil
}
