package easymath

import (
	"fmt"
	"strings"
)

// headEqBody is the parsed form of a definition string
// "name(p1,...,pn) = body". The head is tokenized with the expression
// tokenizer, the body is kept raw for the expression compiler.
type headEqBody struct {
	headStr         string
	bodyStr         string
	headTokens      []token
	definitionError bool
	errorMessage    string
}

func parseHeadEqBody(definition string) *headEqBody {
	eq := findDefinitionEq(definition)
	if eq < 0 {
		return definitionErr("'=' expected in definition '%s'", definition)
	}
	ret := &headEqBody{
		headStr: strings.TrimSpace(definition[:eq]),
		bodyStr: strings.TrimSpace(definition[eq+1:]),
	}
	toks, err := tokenize(ret.headStr)
	if err != nil {
		return definitionErr("malformed head in definition '%s': %v", definition, err)
	}
	if len(toks) < 2 {
		return definitionErr("no parameters found in definition '%s'", definition)
	}
	if !toks[0].isIdentifier() {
		return definitionErr("function name expected in definition '%s'", definition)
	}
	if isReservedName(toks[0].str) {
		return definitionErr("'%s' is a reserved name", toks[0].str)
	}
	ret.headTokens = toks
	return ret
}

func definitionErr(format string, args ...interface{}) *headEqBody {
	return &headEqBody{
		definitionError: true,
		errorMessage:    fmt.Sprintf(format, args...),
	}
}

// findDefinitionEq returns the position of the first standalone '=',
// skipping '==', '<=', '>=' and '!='. The head never contains a legal
// '=', so the first standalone one separates head from body.
func findDefinitionEq(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && strings.IndexByte("<>!=", s[i-1]) >= 0 {
			continue
		}
		return i
	}
	return -1
}
