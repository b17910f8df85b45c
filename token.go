package easymath

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenType byte

const (
	tokenNumber = tokenType(iota)
	tokenIdentifier
	tokenOperator
	tokenLeftPar
	tokenRightPar
	tokenComma
)

type token struct {
	typ tokenType
	str string
	num float64
}

func (t token) isIdentifier() bool {
	return t.typ == tokenIdentifier
}

// parserSymbol is any token which is not an identifier and not a number:
// operators, parenthesis, commas. Such tokens never become parameters
// of a function head.
func (t token) isParserSymbol() bool {
	return t.typ != tokenIdentifier && t.typ != tokenNumber
}

func isIdentStart(c byte) bool {
	return unicode.IsLetter(rune(c)) || c == '_'
}

func isIdentPart(c byte) bool {
	return unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) || c == '_'
}

// tokenize splits an expression source into tokens. It does not interpret
// identifiers, that is left to the compiler which has access to the
// symbol tables.
func tokenize(s string) ([]token, error) {
	ret := make([]token, 0)
	pos := 0
	for pos < len(s) {
		c := s[pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			pos++
		case c == '(':
			ret = append(ret, token{typ: tokenLeftPar, str: "("})
			pos++
		case c == ')':
			ret = append(ret, token{typ: tokenRightPar, str: ")"})
			pos++
		case c == ',':
			ret = append(ret, token{typ: tokenComma, str: ","})
			pos++
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '%' || c == '^':
			ret = append(ret, token{typ: tokenOperator, str: string(c)})
			pos++
		case c == '<' || c == '>':
			if pos+1 < len(s) && s[pos+1] == '=' {
				ret = append(ret, token{typ: tokenOperator, str: s[pos : pos+2]})
				pos += 2
			} else {
				ret = append(ret, token{typ: tokenOperator, str: string(c)})
				pos++
			}
		case c == '=' || c == '!':
			if pos+1 >= len(s) || s[pos+1] != '=' {
				return nil, fmt.Errorf("unexpected '%c' at position %d", c, pos)
			}
			ret = append(ret, token{typ: tokenOperator, str: s[pos : pos+2]})
			pos += 2
		case unicode.IsDigit(rune(c)):
			tok, next, err := readNumber(s, pos)
			if err != nil {
				return nil, err
			}
			ret = append(ret, tok)
			pos = next
		case isIdentStart(c):
			start := pos
			for pos < len(s) && isIdentPart(s[pos]) {
				pos++
			}
			ret = append(ret, token{typ: tokenIdentifier, str: s[start:pos]})
		default:
			return nil, fmt.Errorf("unexpected character '%c' at position %d", c, pos)
		}
	}
	return ret, nil
}

func readNumber(s string, pos int) (token, int, error) {
	start := pos
	for pos < len(s) && unicode.IsDigit(rune(s[pos])) {
		pos++
	}
	if pos < len(s) && s[pos] == '.' {
		pos++
		for pos < len(s) && unicode.IsDigit(rune(s[pos])) {
			pos++
		}
	}
	// scientific notation, only when unambiguous: 1e3, 2.5e-7
	if pos < len(s) && (s[pos] == 'e' || s[pos] == 'E') {
		p := pos + 1
		if p < len(s) && (s[p] == '+' || s[p] == '-') {
			p++
		}
		if p < len(s) && unicode.IsDigit(rune(s[p])) {
			pos = p
			for pos < len(s) && unicode.IsDigit(rune(s[pos])) {
				pos++
			}
		}
	}
	num, err := strconv.ParseFloat(s[start:pos], 64)
	if err != nil {
		return token{}, 0, fmt.Errorf("wrong number literal '%s'", s[start:pos])
	}
	return token{typ: tokenNumber, str: s[start:pos], num: num}, pos, nil
}
