package plan

import (
	"errors"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pablasso/tempo/internal/util"
)

// ExtractBatch pulls a task batch out of loosely formatted text, such as the
// pasted reply of a task generator. It tolerates markdown fences and prose
// around the JSON, accepts "title" for "name" and "hours" for
// "estimated_hours", and fills in defaults for anything missing: IDs become
// T1, T2, ..., names fall back to the ID, and absent or non-positive
// estimates become DefaultEstimatedHours.
func ExtractBatch(text string) (*Batch, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	root := gjson.Parse(raw)
	b := &Batch{}
	tasks := root
	if root.IsObject() {
		b.Name = firstString(root, "name", "title")
		b.Description = firstString(root, "description", "notes")
		tasks = root.Get("tasks")
	}
	if !tasks.IsArray() {
		return nil, ErrNoTasks
	}

	tasks.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		b.Tasks = append(b.Tasks, extractTask(item, len(b.Tasks)))
		return true
	})

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func extractTask(item gjson.Result, index int) Task {
	t := Task{
		ID:   strings.TrimSpace(item.Get("id").String()),
		Name: firstString(item, "name", "title"),
	}
	if t.ID == "" {
		t.ID = util.GenerateTaskID(index)
	}
	if t.Name == "" {
		t.Name = t.ID
	}

	t.EstimatedHours = DefaultEstimatedHours
	for _, key := range []string{"estimated_hours", "hours"} {
		if v := item.Get(key); v.Exists() {
			if h := v.Float(); h > 0 && !math.IsInf(h, 0) {
				t.EstimatedHours = h
			}
			break
		}
	}

	deps := item.Get("depends_on")
	switch {
	case deps.IsArray():
		deps.ForEach(func(_, d gjson.Result) bool {
			if id := strings.TrimSpace(d.String()); id != "" {
				t.DependsOn = append(t.DependsOn, id)
			}
			return true
		})
	case deps.Type == gjson.String:
		if id := strings.TrimSpace(deps.String()); id != "" {
			t.DependsOn = []string{id}
		}
	}
	return t
}

func firstString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(r.Get(k).String()); s != "" {
			return s
		}
	}
	return ""
}

// extractJSON defensively extracts a JSON document from potentially noisy text.
func extractJSON(text string) (string, error) {
	str := stripMarkdownCodeBlocks(text)

	if gjson.Valid(str) {
		return str, nil
	}

	// Find JSON object boundaries as fallback
	start := strings.Index(str, "{")
	end := strings.LastIndex(str, "}")

	if start == -1 || end == -1 || start >= end {
		return "", errors.New("no JSON object found in input")
	}

	extracted := str[start : end+1]
	if !gjson.Valid(extracted) {
		return "", errors.New("extracted content is not valid JSON")
	}

	return extracted, nil
}

// stripMarkdownCodeBlocks removes markdown code block markers from a string.
func stripMarkdownCodeBlocks(s string) string {
	s = strings.TrimSpace(s)
	if cut, found := strings.CutPrefix(s, "```json"); found {
		s = cut
	} else if cut, found := strings.CutPrefix(s, "```"); found {
		s = cut
	}
	if cut, found := strings.CutSuffix(s, "```"); found {
		s = cut
	}
	return strings.TrimSpace(s)
}
