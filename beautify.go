package termlog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"pkt.systems/termlog/internal/callsite"
)

// ErrUnknownLexer is returned by Beautify for a lexer name chroma does not
// know.
var ErrUnknownLexer = errors.New("unknown lexer")

const (
	beautifyStyle     = "solarized-dark"
	beautifyFormatter = "terminal256"
)

// Beautify highlights the text of v for a 256-color terminal, one line at a
// time, and indents every non-blank line by indent spaces. An empty lexer
// name lets chroma guess from the text. A single line without a trailing
// newline is returned without one.
func Beautify(v any, indent int, lexer string) (string, error) {
	text := callsite.Text(v)
	single := !strings.HasSuffix(text, "\n")

	lex, err := lookupLexer(lexer, text)
	if err != nil {
		return "", err
	}
	style := styles.Get(beautifyStyle)
	formatter := formatters.Get(beautifyFormatter)

	lines := strings.Split(text, "\n")
	buf := acquireBuffer()
	defer releaseBuffer(buf)
	for i, line := range lines {
		if line == "" {
			continue
		}
		it, err := lex.Tokenise(nil, line)
		if err != nil {
			return "", fmt.Errorf("beautify line %d: %w", i+1, err)
		}
		tokens := trimTrailingNewline(it.Tokens())
		buf.Reset()
		if err := formatter.Format(buf, style, chroma.Literator(tokens...)); err != nil {
			return "", fmt.Errorf("beautify line %d: %w", i+1, err)
		}
		lines[i] = buf.String()
	}

	if indent > 0 {
		pad := strings.Repeat(" ", indent)
		for i, line := range lines {
			if strings.TrimSpace(line) != "" {
				lines[i] = pad + line
			}
		}
	}
	out := strings.Join(lines, "\n")
	if single {
		out = strings.TrimRight(out, "\n")
	}
	return out, nil
}

func lookupLexer(name, text string) (chroma.Lexer, error) {
	var lex chroma.Lexer
	if name != "" {
		if lex = lexers.Get(name); lex == nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownLexer, name)
		}
	} else if lex = lexers.Analyse(text); lex == nil {
		lex = lexers.Fallback
	}
	return chroma.Coalesce(lex), nil
}

// trimTrailingNewline drops the newline lexers append to the last token.
func trimTrailingNewline(tokens []chroma.Token) []chroma.Token {
	for len(tokens) > 0 {
		last := &tokens[len(tokens)-1]
		last.Value = strings.TrimRight(last.Value, "\n")
		if last.Value != "" {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}
