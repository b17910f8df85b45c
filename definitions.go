package easymath

import (
	"bufio"
	"fmt"
	"strings"
)

// ParseDefinitions parses a script of function definitions, one
// "name(params) = body" per definition. '//' starts a comment, a line
// without a standalone '=' continues the body of the previous
// definition. Each function may call any function defined before it in
// the script.
func ParseDefinitions(source string) ([]*Function, error) {
	defs := consolidateDefinitions(splitLinesStripComments(source))
	ret := make([]*Function, 0, len(defs))
	for lineno, def := range defs {
		fn := ParseFunction(def)
		if fn.ParametersNumber() == 0 {
			return nil, fmt.Errorf("definition %d: %s", lineno, fn.ErrorMessage())
		}
		for _, prev := range ret {
			fn.AddFunctions(prev)
		}
		ret = append(ret, fn)
	}
	return ret, nil
}

func MustParseDefinitions(source string) []*Function {
	ret, err := ParseDefinitions(source)
	if err != nil {
		panic(err)
	}
	return ret
}

func splitLinesStripComments(s string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "//")
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

func consolidateDefinitions(lines []string) []string {
	ret := make([]string, 0)
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if findDefinitionEq(line) >= 0 || len(ret) == 0 {
			ret = append(ret, line)
		} else {
			ret[len(ret)-1] += " " + line
		}
	}
	return ret
}
