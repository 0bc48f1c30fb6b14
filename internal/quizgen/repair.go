package quizgen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError is the terminal failure of the repair cascade: no stage
// produced a parseable array. It carries the original response text so
// the caller can show it for manual inspection.
type ParseError struct {
	// Raw is the model's response exactly as received.
	Raw string

	// Err is the parse error from the last attempted stage.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("response not parseable after all repair stages: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// repairStage is one strategy in the cascade. Transforms are cumulative:
// each stage reshapes the text left by the previous one, then the
// result is re-parsed.
type repairStage struct {
	name  string
	apply func(string) string
}

// repairStages is ordered by decreasing confidence. Literal truncation
// (bracket-balance) is far more common than scattered corruption, so
// fragment scanning is the last resort.
var repairStages = []repairStage{
	{"direct", nil},
	{"fence-strip", stripFences},
	{"control-scrub", scrubControlChars},
	{"comma-patch", patchDanglingCommas},
	{"bracket-balance", completeBrackets},
	{"fragment-extract", extractFragments},
}

// Normalize turns raw model text into a parsed array, applying the
// repair cascade until one stage succeeds. Returns the parsed elements
// and the name of the stage that produced the parse. When every stage
// fails the error is a *ParseError carrying the raw text.
func Normalize(raw string) ([]any, string, error) {
	text := raw
	var lastErr error

	for _, stage := range repairStages {
		if stage.apply != nil {
			text = stage.apply(text)
		}
		parsed, err := parseArray(text)
		if err == nil {
			return parsed, stage.name, nil
		}
		lastErr = err
	}

	return nil, "", &ParseError{Raw: raw, Err: lastErr}
}

// parseArray strictly parses text as a JSON array.
func parseArray(s string) ([]any, error) {
	var arr []any
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil, err
	}
	return arr, nil
}

var (
	openFence  = regexp.MustCompile("^```[a-zA-Z]*[ \t]*\r?\n?")
	closeFence = regexp.MustCompile("\r?\n?```[ \t]*$")
	hspaceRun  = regexp.MustCompile(`[ \t\r]+`)
)

// stripFences removes a surrounding markdown code fence and collapses
// redundant horizontal whitespace runs to single spaces.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = openFence.ReplaceAllString(s, "")
	s = closeFence.ReplaceAllString(s, "")
	s = hspaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// scrubControlChars drops characters below the printable threshold.
// A literal newline inside a string field is the one exception: it is
// rewritten to a \n escape so the surrounding structure stays
// well-formed instead of losing the line break.
func scrubControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for _, r := range s {
		if inString && escaped {
			escaped = false
			b.WriteRune(r)
			continue
		}

		switch {
		case inString && r == '\\':
			escaped = true
			b.WriteRune(r)
		case r == '"':
			inString = !inString
			b.WriteRune(r)
		case r == '\n' && inString:
			b.WriteString(`\n`)
		case r < 0x20:
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

var danglingComma = regexp.MustCompile(`,\s*([\]}])`)

// patchDanglingCommas removes trailing separators immediately before a
// closing array or object delimiter.
func patchDanglingCommas(s string) string {
	return danglingComma.ReplaceAllString(s, "$1")
}

// completeBrackets appends the closing delimiters a truncated response
// is missing. Open delimiters are tracked as a stack (quote-aware, so
// braces inside string values don't count) and closed innermost-first:
// for a response cut off at its length limit that means braces before
// brackets, closing the half-written object and then its arrays. An
// unterminated string is closed first.
func completeBrackets(s string) string {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
				continue
			}
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 && !inString {
		return s
	}

	var b strings.Builder
	b.WriteString(s)
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

// fragmentPattern matches a well-formed question object: a "question"
// string field followed by an "answers" array.
var fragmentPattern = regexp.MustCompile(
	`\{\s*"question"\s*:\s*"(?:[^"\\]|\\.)*"\s*,\s*"answers"\s*:\s*\[[^\]]*\]\s*\}`)

// extractFragments scans for repeating question-shaped object fragments
// and wraps the survivors in a synthetic array. Fragments that do not
// parse on their own, or whose answers array does not hold exactly
// AnswersPerQuestion entries, are discarded. With no usable fragments
// the input passes through unchanged so the cascade fails with the real
// parse error.
func extractFragments(s string) string {
	matches := fragmentPattern.FindAllString(s, -1)

	var kept []string
	for _, m := range matches {
		var probe struct {
			Question string `json:"question"`
			Answers  []any  `json:"answers"`
		}
		if err := json.Unmarshal([]byte(m), &probe); err != nil {
			continue
		}
		if len(probe.Answers) != AnswersPerQuestion {
			continue
		}
		kept = append(kept, m)
	}

	if len(kept) == 0 {
		return s
	}
	return "[" + strings.Join(kept, ",") + "]"
}
