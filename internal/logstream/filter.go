package logstream

import (
	"slices"
	"strings"

	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
)

// TokenKind identifies a structured filter criterion category.
type TokenKind string

// Token categories. TokenFree is the untagged free-text match; it is also
// the fallback for unrecognized tokens.
const (
	TokenFree  TokenKind = ""
	TokenStep  TokenKind = "step"
	TokenType  TokenKind = "type"
	TokenQuery TokenKind = "query"
)

// FilterValue is one filter criterion.
type FilterValue struct {
	Token TokenKind
	Value string
}

// Filter is the declarative filter evaluated against the accumulated
// sequence. Levels must contain an entry for every level name including
// the synthetic EVENT level; a missing key excludes the level.
type Filter struct {
	Values []FilterValue
	Levels map[runsmodel.Level]bool
	Since  int64
}

// DefaultFilter returns a filter with no timestamp floor and every level
// enabled except DEBUG.
func DefaultFilter(values []FilterValue) *Filter {
	levels := make(map[runsmodel.Level]bool, len(runsmodel.AllLevels()))
	for _, l := range runsmodel.AllLevels() {
		levels[l] = l != runsmodel.LevelDebug
	}

	return &Filter{
		Values: values,
		Levels: levels,
	}
}

// Apply evaluates the filter against the accumulated sequence and returns
// the matching events in their original order. The input is never mutated
// and the result is a fresh slice on every call.
func Apply(seq []Accumulated, f *Filter, selectedSteps []string) []Accumulated {
	out := make([]Accumulated, 0, len(seq))
	for _, item := range seq {
		if matches(item.Event, f, selectedSteps) {
			out = append(out, item)
		}
	}

	return out
}

func matches(ev runsmodel.LogEvent, f *Filter, selectedSteps []string) bool {
	if !f.Levels[ev.EffectiveLevel()] {
		return false
	}

	if f.Since != 0 && ev.GetTimestamp() < f.Since {
		return false
	}

	for _, v := range f.Values {
		if !matchValue(ev, v, selectedSteps) {
			return false
		}
	}

	return true
}

func matchValue(ev runsmodel.LogEvent, v FilterValue, selectedSteps []string) bool {
	switch v.Token {
	case TokenQuery:
		key := ev.GetStepKey()
		if key == "" {
			return false
		}
		return slices.Contains(selectedSteps, key)
	case TokenStep:
		return ev.GetStepKey() == v.Value
	case TokenType:
		return strings.Contains(strings.ToLower(ev.Tag()), strings.ToLower(v.Value))
	default:
		// Unrecognized tokens fall back to the free-text match.
		return strings.Contains(strings.ToLower(ev.GetMessage()), strings.ToLower(v.Value))
	}
}
