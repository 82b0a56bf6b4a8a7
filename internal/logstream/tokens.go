package logstream

import (
	"strings"

	runsmodel "github.com/juanspinelli/dagster/internal/model/runs"
)

// Suggestion offers the known values for one filter token category. This
// is advisory metadata for presentation layers; the filter engine does not
// enforce it.
type Suggestion struct {
	Token  TokenKind
	Values []string
}

// Suggestions returns the filter suggestions for a run: the step token
// with the run's step keys and the type token with the structured event
// tag names.
func Suggestions(stepKeys []string) []Suggestion {
	return []Suggestion{
		{Token: TokenStep, Values: stepKeys},
		{Token: TokenType, Values: runsmodel.StructuredTags()},
	}
}

// QueryTokenizer is the default Tokenizer: whitespace-separated terms,
// where a term prefixed with a recognized token category and a colon
// becomes a structured criterion and everything else a free-text one.
type QueryTokenizer struct{}

// Tokenize implements Tokenizer.
func (QueryTokenizer) Tokenize(query string) []FilterValue {
	var values []FilterValue
	for _, term := range strings.Fields(query) {
		if token, value, ok := strings.Cut(term, ":"); ok {
			switch TokenKind(token) {
			case TokenStep, TokenType, TokenQuery:
				values = append(values, FilterValue{Token: TokenKind(token), Value: value})
				continue
			}
		}

		values = append(values, FilterValue{Value: term})
	}

	return values
}
