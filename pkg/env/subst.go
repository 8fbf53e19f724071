package env

import (
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"github.com/albertocavalcante/toolutil/internal/log"
)

// maxSubstDepth bounds recursive expansion so that self-referencing variables
// (A=$A) terminate.
const maxSubstDepth = 16

// dollar stands in for an escaped "$$" between expansion rounds.
const dollar = "\uE000"

// Subst expands $NAME and ${NAME} references in text against the environment's
// variables, repeating until the text stops changing. Undefined variables expand
// to "", "$$" produces a literal "$" and backslashes are kept verbatim.
//
// Text that cannot be expanded (for example a command substitution) is returned
// unchanged.
func (e *Environment) Subst(text string) string {
	if !strings.Contains(text, "$") {
		return text
	}
	lookup := func(name string) string {
		return e.vars[name]
	}

	cur := text
	for range maxSubstDepth {
		next, err := substOnce(cur, lookup)
		if err != nil {
			log.Component("env").Debug("substitution failed", "text", text, "error", err)
			return text
		}
		if next == cur {
			break
		}
		cur = next
	}
	return strings.ReplaceAll(cur, dollar, "$")
}

func substOnce(text string, lookup func(string) string) (string, error) {
	if !strings.Contains(text, "$") {
		return text, nil
	}
	parts := strings.Split(text, "$$")
	for i, part := range parts {
		if !strings.Contains(part, "$") {
			continue
		}
		out, err := expandWord(part, lookup)
		if err != nil {
			return "", err
		}
		parts[i] = out
	}
	return strings.Join(parts, dollar), nil
}

// expandWord runs text through the shell here-document expander, which performs
// parameter expansion but leaves quotes and globs alone.
func expandWord(text string, lookup func(string) string) (string, error) {
	// Here-documents treat backslash as an escape character; paths must not lose them.
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	word, err := syntax.NewParser().Document(strings.NewReader(escaped))
	if err != nil {
		return "", err
	}
	cfg := &expand.Config{Env: expand.FuncEnviron(lookup)}
	return expand.Document(cfg, word)
}
