package easymath

import (
	"fmt"
	"math"
)

// parser compiles a token stream into a tree of eval closures.
// Identifiers are resolved at compile time against the owning
// expression symbol tables: arguments, then constants, then user
// functions, then the built-in library and built-in constants.
type parser struct {
	toks []token
	pos  int
	expr *Expression
}

func (e *Expression) compile() {
	e.modified = false
	e.root = nil

	toks, err := tokenize(e.source)
	if err == nil {
		p := &parser{toks: toks, expr: e}
		var root *exprNode
		root, err = p.parseExpression()
		if err == nil && p.pos < len(p.toks) {
			err = fmt.Errorf("unexpected token '%s'", p.toks[p.pos].str)
		}
		if err == nil {
			e.root = root
		}
	}
	if err != nil {
		e.syntaxStatus = SyntaxError
		e.errorMessage = err.Error()
		e.log.Debugf("syntax error in '%s': %v", e.source, err)
		return
	}
	e.syntaxStatus = NoSyntaxErrors
	e.errorMessage = ""
	e.log.Debugf("compiled '%s'", e.source)
}

func (p *parser) isOperator(ops ...string) bool {
	if p.pos >= len(p.toks) || p.toks[p.pos].typ != tokenOperator {
		return false
	}
	for _, op := range ops {
		if p.toks[p.pos].str == op {
			return true
		}
	}
	return false
}

func (p *parser) is(typ tokenType) bool {
	return p.pos < len(p.toks) && p.toks[p.pos].typ == typ
}

func (p *parser) parseExpression() (*exprNode, error) {
	return p.parseComparison()
}

func (p *parser) parseComparison() (*exprNode, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.isOperator("<", "<=", ">", ">=", "==", "!=") {
		op := p.toks[p.pos].str
		p.pos++
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = binaryNode(comparisonOp(op), left, right)
	}
	return left, nil
}

func (p *parser) parseAdditive() (*exprNode, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.isOperator("+", "-") {
		op := p.toks[p.pos].str
		p.pos++
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			left = binaryNode(func(a, b float64) float64 { return a + b }, left, right)
		} else {
			left = binaryNode(func(a, b float64) float64 { return a - b }, left, right)
		}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (*exprNode, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.isOperator("*", "/", "%") {
		op := p.toks[p.pos].str
		p.pos++
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		switch op {
		case "*":
			left = binaryNode(func(a, b float64) float64 { return a * b }, left, right)
		case "/":
			left = binaryNode(func(a, b float64) float64 { return a / b }, left, right)
		default:
			left = binaryNode(math.Mod, left, right)
		}
	}
	return left, nil
}

// '^' is right associative
func (p *parser) parsePower() (*exprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.isOperator("^") {
		p.pos++
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = binaryNode(math.Pow, left, right)
	}
	return left, nil
}

func (p *parser) parseUnary() (*exprNode, error) {
	if p.isOperator("-") {
		p.pos++
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &exprNode{
			args: []*exprNode{arg},
			evalFun: func(par *CallParams) float64 {
				return -par.Arg(0)
			},
		}, nil
	}
	if p.isOperator("+") {
		p.pos++
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*exprNode, error) {
	if p.pos >= len(p.toks) {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	t := p.toks[p.pos]
	switch t.typ {
	case tokenNumber:
		p.pos++
		v := t.num
		return &exprNode{
			evalFun: func(_ *CallParams) float64 { return v },
		}, nil

	case tokenLeftPar:
		p.pos++
		ret, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.is(tokenRightPar) {
			return nil, fmt.Errorf("')' expected")
		}
		p.pos++
		return ret, nil

	case tokenIdentifier:
		p.pos++
		if p.is(tokenLeftPar) {
			return p.parseCall(t.str)
		}
		return p.resolveSymbol(t.str)
	}
	return nil, fmt.Errorf("unexpected token '%s'", t.str)
}

func (p *parser) parseCall(sym string) (*exprNode, error) {
	p.pos++ // skip '('
	args := make([]*exprNode, 0)
	if !p.is(tokenRightPar) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.is(tokenComma) {
				break
			}
			p.pos++
		}
	}
	if !p.is(tokenRightPar) {
		return nil, fmt.Errorf("')' expected in call to '%s'", sym)
	}
	p.pos++

	if fn := p.expr.lookupFunction(sym); fn != nil {
		if len(args) != fn.ParametersNumber() {
			return nil, fmt.Errorf("wrong number of arguments in call to '%s': expected %d, got %d",
				sym, fn.ParametersNumber(), len(args))
		}
		return userCallNode(fn, args), nil
	}
	if fd, found := libraryFunction(sym); found {
		if fd.requiredNumParams >= 0 && len(args) != fd.requiredNumParams {
			return nil, fmt.Errorf("wrong number of arguments in call to '%s': expected %d, got %d",
				sym, fd.requiredNumParams, len(args))
		}
		if fd.requiredNumParams < 0 && len(args) == 0 {
			return nil, fmt.Errorf("at least one argument expected in call to '%s'", sym)
		}
		return &exprNode{args: args, evalFun: fd.evalFun}, nil
	}
	return nil, fmt.Errorf("unknown function '%s'", sym)
}

func (p *parser) resolveSymbol(sym string) (*exprNode, error) {
	if a := p.expr.lookupArgument(sym); a != nil {
		return &exprNode{
			evalFun: func(_ *CallParams) float64 { return a.value },
		}, nil
	}
	if c := p.expr.lookupConstant(sym); c != nil {
		v := c.value
		return &exprNode{
			evalFun: func(_ *CallParams) float64 { return v },
		}, nil
	}
	if v, found := builtinConstants[sym]; found {
		value := v
		return &exprNode{
			evalFun: func(_ *CallParams) float64 { return value },
		}, nil
	}
	return nil, fmt.Errorf("unknown token '%s'", sym)
}

func binaryNode(op func(a, b float64) float64, left, right *exprNode) *exprNode {
	return &exprNode{
		args: []*exprNode{left, right},
		evalFun: func(par *CallParams) float64 {
			return op(par.Arg(0), par.Arg(1))
		},
	}
}

// comparisons yield 1 or 0 and propagate NaN
func comparisonOp(op string) func(a, b float64) float64 {
	var cmp func(a, b float64) bool
	switch op {
	case "<":
		cmp = func(a, b float64) bool { return a < b }
	case "<=":
		cmp = func(a, b float64) bool { return a <= b }
	case ">":
		cmp = func(a, b float64) bool { return a > b }
	case ">=":
		cmp = func(a, b float64) bool { return a >= b }
	case "==":
		cmp = func(a, b float64) bool { return a == b }
	default:
		cmp = func(a, b float64) bool { return a != b }
	}
	return func(a, b float64) float64 {
		if math.IsNaN(a) || math.IsNaN(b) {
			return math.NaN()
		}
		if cmp(a, b) {
			return 1
		}
		return 0
	}
}

// userCallNode calls a user defined function. The function is cloned on
// each call, so every invocation gets its own argument slots. That is
// what makes recursive calls safe: nested invocations never clobber the
// parameter values of the enclosing one.
func userCallNode(fn *Function, args []*exprNode) *exprNode {
	return &exprNode{
		args: args,
		evalFun: func(par *CallParams) float64 {
			par.ctx.enterCall()
			defer par.ctx.leaveCall()

			values := make([]float64, par.Arity())
			for i := range values {
				values[i] = par.Arg(i)
			}
			return fn.Clone().calculate(par.ctx, values)
		},
	}
}
