package prober

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/samvad-hq/placeholder-client/pkg/checks"
	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
)

// Evaluate returns every expectation out fails. A transport failure always
// fails, even when 500 is an accepted status. Body expectations are only
// checked on 2xx outcomes.
func Evaluate(exp checks.Expect, out placeholder.Outcome) []string {
	if out.Failed() {
		return []string{"transport failure: " + out.Error}
	}

	var failures []string
	switch {
	case len(exp.Status) == 0 && !out.OK:
		failures = append(failures, fmt.Sprintf("status %d is not 2xx", out.StatusCode))
	case len(exp.Status) > 0 && !slices.Contains(exp.Status, out.StatusCode):
		failures = append(failures, fmt.Sprintf("status %d not in %v", out.StatusCode, exp.Status))
	}
	if !out.OK {
		return failures
	}

	if len(exp.Fields) > 0 || len(exp.Equals) > 0 {
		obj := out.Object()
		if obj == nil {
			failures = append(failures, "expected a JSON object body")
		} else {
			for _, f := range exp.Fields {
				if _, ok := obj[f]; !ok {
					failures = append(failures, fmt.Sprintf("field %q missing", f))
				}
			}
			for _, k := range sortedKeys(exp.Equals) {
				if !jsonEqual(obj[k], exp.Equals[k]) {
					failures = append(failures, fmt.Sprintf("field %q = %v, want %v", k, obj[k], exp.Equals[k]))
				}
			}
		}
	}

	if len(exp.Each) > 0 || exp.MaxItems > 0 {
		list, isList := out.Data.([]any)
		if !isList {
			failures = append(failures, "expected a JSON array body")
			return failures
		}
		if exp.MaxItems > 0 && len(list) > exp.MaxItems {
			failures = append(failures, fmt.Sprintf("got %d items, want at most %d", len(list), exp.MaxItems))
		}
		for i, item := range list {
			obj, _ := item.(map[string]any)
			for _, k := range sortedKeys(exp.Each) {
				if obj == nil || !jsonEqual(obj[k], exp.Each[k]) {
					failures = append(failures, fmt.Sprintf("item %d: field %q does not equal %v", i, k, exp.Each[k]))
					break
				}
			}
		}
	}

	return failures
}

// jsonEqual compares values by their JSON encoding, so 1 (YAML int) equals
// 1.0 (decoded JSON number).
func jsonEqual(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
