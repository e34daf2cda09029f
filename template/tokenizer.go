// Package template locates embedded expressions inside literal text and
// renders templates by evaluating each one against a variable context.
package template

import (
	"log/slog"
	"strings"

	"github.com/sandscript/go-sandscript/internal/helpers"
)

// TokenKind classifies a template token.
type TokenKind int

const (
	// TokenText is a literal run of template text.
	TokenText TokenKind = iota
	// TokenExpression is an embedded expression between delimiters.
	TokenExpression
)

// String implements fmt.Stringer.
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenExpression:
		return "expression"
	}
	return "unknown"
}

// Token is one span of a template. Start and End cover the whole token
// including delimiters; for expression tokens ContentStart and ContentEnd
// bound the inner expression text, so source[ContentStart:ContentEnd]
// recovers it exactly even though Value is trimmed.
type Token struct {
	Kind         TokenKind
	Value        string
	Start        int
	End          int
	ContentStart int
	ContentEnd   int
}

// DefaultStartDelimiter and DefaultEndDelimiter mark embedded expressions
// unless overridden with WithDelimiters.
const (
	DefaultStartDelimiter = "{{"
	DefaultEndDelimiter   = "}}"
)

// Tokenizer splits template text into text and expression tokens. Safe for
// concurrent use; all configuration is fixed at construction.
type Tokenizer struct {
	start              string
	end                string
	preserveWhitespace bool
	logHandler         slog.Handler
	logger             *slog.Logger
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithDelimiters overrides the expression delimiters. Empty strings keep
// the defaults.
func WithDelimiters(start, end string) Option {
	return func(t *Tokenizer) {
		if start != "" {
			t.start = start
		}
		if end != "" {
			t.end = end
		}
	}
}

// WithPreserveWhitespace controls whether text tokens keep their
// surrounding whitespace. Preserving is the default, so literal text
// round-trips exactly; pass false to trim text tokens and drop
// whitespace-only ones.
func WithPreserveWhitespace(preserve bool) Option {
	return func(t *Tokenizer) {
		t.preserveWhitespace = preserve
	}
}

// WithLogHandler sets the slog handler for tokenizer logging.
func WithLogHandler(handler slog.Handler) Option {
	return func(t *Tokenizer) {
		t.logHandler = handler
	}
}

// NewTokenizer creates a Tokenizer.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		start:              DefaultStartDelimiter,
		end:                DefaultEndDelimiter,
		preserveWhitespace: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logHandler, t.logger = helpers.SetupLogger(t.logHandler, "tokenizer")
	return t
}

// Parse scans source left to right and returns its token sequence.
// Expression delimiters appearing inside single-quoted, double-quoted or
// backtick strings within an expression do not terminate it. An expression
// opened but never closed is emitted as literal text, opening marker
// included. Whitespace-only expressions contribute no token.
func (t *Tokenizer) Parse(source string) []Token {
	var tokens []Token
	pos := 0
	for pos < len(source) {
		rel := strings.Index(source[pos:], t.start)
		if rel < 0 {
			tokens = t.appendText(tokens, source, pos, len(source))
			break
		}
		open := pos + rel
		tokens = t.appendText(tokens, source, pos, open)

		contentStart := open + len(t.start)
		contentEnd, closed := t.findEnd(source, contentStart)
		if !closed {
			t.logger.Debug("unclosed expression treated as text", "offset", open)
			tokens = t.appendText(tokens, source, open, len(source))
			break
		}
		end := contentEnd + len(t.end)
		content := source[contentStart:contentEnd]
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			tokens = append(tokens, Token{
				Kind:         TokenExpression,
				Value:        trimmed,
				Start:        open,
				End:          end,
				ContentStart: contentStart,
				ContentEnd:   contentEnd,
			})
		}
		pos = end
	}
	return tokens
}

// findEnd locates the closing delimiter from offset from, skipping over
// string literals (with backslash escapes) nested in the expression.
func (t *Tokenizer) findEnd(source string, from int) (int, bool) {
	var quote byte
	for i := from; i < len(source); {
		c := source[i]
		if quote != 0 {
			if c == '\\' && i+1 < len(source) {
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		if c == '\'' || c == '"' || c == '`' {
			quote = c
			i++
			continue
		}
		if strings.HasPrefix(source[i:], t.end) {
			return i, true
		}
		i++
	}
	return 0, false
}

// appendText adds a text token for source[start:end], honoring the
// whitespace mode. Tokens that end up empty are dropped.
func (t *Tokenizer) appendText(tokens []Token, source string, start, end int) []Token {
	if start >= end {
		return tokens
	}
	text := source[start:end]
	if !t.preserveWhitespace {
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return tokens
	}
	return append(tokens, Token{
		Kind:  TokenText,
		Value: text,
		Start: start,
		End:   end,
	})
}
