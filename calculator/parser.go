package calculator

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// ErrUnresolved marks a symbolic expression that could not be reduced to a
// literal because one or more variables remained unbound.
var ErrUnresolved = errors.New("unresolved symbolic parameter")

// ErrParse marks a malformed expression.
var ErrParse = errors.New("malformed expression")

// parsedPrograms caches the AST per distinct program string. Substitution
// is called once per operation field per run, but the same expression text
// recurs across shots and sweeps.
var parsedPrograms, _ = lru.New[string, *program](1024)

// Evaluate runs a small arithmetic program of the form
// "a=1.5; b=0.2; sin(a) * b" and returns the value of the last statement.
// Statements are separated by semicolons; all but expression statements
// must be assignments. Supported operators: + - * / ** with the usual
// precedence, ** binding tightest and right-associative. Supported
// functions: sin, cos, tan, sqrt, exp, ln, sign, abs.
func Evaluate(text string) (float64, error) {
	prog, ok := parsedPrograms.Get(text)
	if !ok {
		var err error
		prog, err = parse(text)
		if err != nil {
			return 0, err
		}
		parsedPrograms.Add(text, prog)
	}
	return prog.run()
}

type statement struct {
	assignTo string // empty for plain expression statements
	expr     node
}

type program struct {
	statements []statement
}

func (p *program) run() (float64, error) {
	env := make(map[string]float64)
	var last float64
	for _, st := range p.statements {
		v, err := st.expr.eval(env)
		if err != nil {
			return 0, err
		}
		if st.assignTo != "" {
			env[st.assignTo] = v
		}
		last = v
	}
	return last, nil
}

type node interface {
	eval(env map[string]float64) (float64, error)
}

type literalNode float64

func (n literalNode) eval(map[string]float64) (float64, error) {
	return float64(n), nil
}

type variableNode string

func (n variableNode) eval(env map[string]float64) (float64, error) {
	v, ok := env[string(n)]
	if !ok {
		return 0, errors.Wrapf(ErrUnresolved, "variable %q", string(n))
	}
	return v, nil
}

type negNode struct {
	operand node
}

func (n negNode) eval(env map[string]float64) (float64, error) {
	v, err := n.operand.eval(env)
	return -v, err
}

type binaryNode struct {
	op          string
	left, right node
}

func (n binaryNode) eval(env map[string]float64) (float64, error) {
	l, err := n.left.eval(env)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(env)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, errors.Wrap(ErrParse, "division by zero")
		}
		return l / r, nil
	case "**":
		return math.Pow(l, r), nil
	}
	return 0, errors.Wrapf(ErrParse, "unknown operator %q", n.op)
}

type callNode struct {
	fn  string
	arg node
}

var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"sqrt": math.Sqrt,
	"exp":  math.Exp,
	"ln":   math.Log,
	"abs":  math.Abs,
	"sign": func(v float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	},
}

func (n callNode) eval(env map[string]float64) (float64, error) {
	fn, ok := functions[n.fn]
	if !ok {
		return 0, errors.Wrapf(ErrParse, "unknown function %q", n.fn)
	}
	v, err := n.arg.eval(env)
	if err != nil {
		return 0, err
	}
	return fn(v), nil
}

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenIdent
	tokenOp
	tokenLParen
	tokenRParen
	tokenSemi
	tokenAssign
	tokenEOF
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

func lex(text string) ([]token, error) {
	var tokens []token
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			// scientific notation
			if j < len(runes) && (runes[j] == 'e' || runes[j] == 'E') {
				k := j + 1
				if k < len(runes) && (runes[k] == '+' || runes[k] == '-') {
					k++
				}
				if k < len(runes) && unicode.IsDigit(runes[k]) {
					for k < len(runes) && unicode.IsDigit(runes[k]) {
						k++
					}
					j = k
				}
			}
			num, err := strconv.ParseFloat(string(runes[i:j]), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrParse, "bad number %q", string(runes[i:j]))
			}
			tokens = append(tokens, token{kind: tokenNumber, num: num})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: string(runes[i:j])})
			i = j
		case r == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				tokens = append(tokens, token{kind: tokenOp, text: "**"})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokenOp, text: "*"})
				i++
			}
		case strings.ContainsRune("+-/", r):
			tokens = append(tokens, token{kind: tokenOp, text: string(r)})
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen})
			i++
		case r == ';':
			tokens = append(tokens, token{kind: tokenSemi})
			i++
		case r == '=':
			tokens = append(tokens, token{kind: tokenAssign})
			i++
		default:
			return nil, errors.Wrapf(ErrParse, "unexpected character %q", string(r))
		}
	}
	tokens = append(tokens, token{kind: tokenEOF})
	return tokens, nil
}

type parser struct {
	tokens []token
	pos    int
}

func parse(text string) (*program, error) {
	tokens, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	prog := &program{}
	for p.peek().kind != tokenEOF {
		if p.peek().kind == tokenSemi {
			p.next()
			continue
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.statements = append(prog.statements, st)
	}
	if len(prog.statements) == 0 {
		return nil, errors.Wrap(ErrParse, "empty expression")
	}
	return prog, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseStatement() (statement, error) {
	if p.peek().kind == tokenIdent && p.tokens[p.pos+1].kind == tokenAssign {
		name := p.next().text
		p.next() // '='
		expr, err := p.parseExpr()
		if err != nil {
			return statement{}, err
		}
		return statement{assignTo: name, expr: expr}, nil
	}
	expr, err := p.parseExpr()
	if err != nil {
		return statement{}, err
	}
	return statement{expr: expr}, nil
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenOp && (p.peek().text == "+" || p.peek().text == "-") {
		op := p.next().text
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenOp && (p.peek().text == "*" || p.peek().text == "/") {
		op := p.next().text
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind == tokenOp && p.peek().text == "**" {
		p.next()
		// right-associative
		exp, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return binaryNode{op: "**", left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) parseUnary() (node, error) {
	switch t := p.peek(); {
	case t.kind == tokenOp && t.text == "-":
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negNode{operand: operand}, nil
	case t.kind == tokenOp && t.text == "+":
		p.next()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokenNumber:
		return literalNode(t.num), nil
	case tokenIdent:
		if p.peek().kind == tokenLParen {
			p.next()
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.next().kind != tokenRParen {
				return nil, errors.Wrapf(ErrParse, "missing ) after %s(", t.text)
			}
			return callNode{fn: t.text, arg: arg}, nil
		}
		switch t.text {
		case "pi", "PI":
			return literalNode(math.Pi), nil
		case "e", "E":
			return literalNode(math.E), nil
		}
		return variableNode(t.text), nil
	case tokenLParen:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokenRParen {
			return nil, errors.Wrap(ErrParse, "missing closing parenthesis")
		}
		return expr, nil
	}
	return nil, errors.Wrap(ErrParse, "unexpected token")
}
