package logstream_test

import (
	"reflect"
	"testing"

	"github.com/juanspinelli/dagster/internal/logstream"
	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
)

func TestQueryTokenizer(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []logstream.FilterValue
	}{
		{
			name:  "empty query",
			query: "   ",
			want:  nil,
		},
		{
			name:  "bare terms are free text",
			query: "loading users",
			want: []logstream.FilterValue{
				{Value: "loading"},
				{Value: "users"},
			},
		},
		{
			name:  "recognized tokens become structured criteria",
			query: "step:load type:materialization query:*",
			want: []logstream.FilterValue{
				{Token: logstream.TokenStep, Value: "load"},
				{Token: logstream.TokenType, Value: "materialization"},
				{Token: logstream.TokenQuery, Value: "*"},
			},
		},
		{
			name:  "unrecognized token stays free text with its prefix",
			query: "severity:high",
			want: []logstream.FilterValue{
				{Value: "severity:high"},
			},
		},
		{
			name:  "mixed structured and free text",
			query: "step:load timeout",
			want: []logstream.FilterValue{
				{Token: logstream.TokenStep, Value: "load"},
				{Value: "timeout"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := logstream.QueryTokenizer{}.Tokenize(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSuggestions(t *testing.T) {
	stepKeys := []string{"load", "transform"}

	got := logstream.Suggestions(stepKeys)

	if len(got) != 2 {
		t.Fatalf("expected 2 suggestion groups, got %d", len(got))
	}
	if got[0].Token != logstream.TokenStep || !reflect.DeepEqual(got[0].Values, stepKeys) {
		t.Errorf("expected step suggestions with the run's step keys, got %v", got[0])
	}
	if got[1].Token != logstream.TokenType || !reflect.DeepEqual(got[1].Values, runsmodel.StructuredTags()) {
		t.Errorf("expected type suggestions with the structured tag names, got %v", got[1])
	}
}
