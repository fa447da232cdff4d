// Package calc evaluates arithmetic expressions over numbers and + - * / ( ).
// It is a closed tokenizer + recursive-descent parser; no expression ever
// reaches a general-purpose evaluator.
package calc

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidExpression = errors.New("invalid expression")
	ErrDivisionByZero    = errors.New("division by zero")
)

type tokenType int

const (
	tokenNumber tokenType = iota
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
	tokenEOF
)

type token struct {
	typ      tokenType
	value    float64
	position int
}

type parser struct {
	tokens   []token
	position int
}

// Eval evaluates an expression string and returns the result.
func Eval(expression string) (float64, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return 0, err
	}
	p := &parser{tokens: tokens}
	result, err := p.parseExpression()
	if err != nil {
		return 0, err
	}
	if p.current().typ != tokenEOF {
		return 0, fmt.Errorf("%w: unexpected input at position %d", ErrInvalidExpression, p.current().position)
	}
	return result, nil
}

func tokenize(expression string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expression) {
		c := expression[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+':
			tokens = append(tokens, token{typ: tokenPlus, position: i})
			i++
		case c == '-':
			tokens = append(tokens, token{typ: tokenMinus, position: i})
			i++
		case c == '*':
			tokens = append(tokens, token{typ: tokenStar, position: i})
			i++
		case c == '/':
			tokens = append(tokens, token{typ: tokenSlash, position: i})
			i++
		case c == '(':
			tokens = append(tokens, token{typ: tokenLParen, position: i})
			i++
		case c == ')':
			tokens = append(tokens, token{typ: tokenRParen, position: i})
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(expression) && (expression[i] >= '0' && expression[i] <= '9' || expression[i] == '.') {
				i++
			}
			literal := expression[start:i]
			value, err := strconv.ParseFloat(literal, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q at position %d", ErrInvalidExpression, literal, start)
			}
			tokens = append(tokens, token{typ: tokenNumber, value: value, position: start})
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at position %d", ErrInvalidExpression, string(c), i)
		}
	}
	tokens = append(tokens, token{typ: tokenEOF, position: len(expression)})
	return tokens, nil
}

func (p *parser) current() token {
	return p.tokens[p.position]
}

func (p *parser) advance() token {
	t := p.tokens[p.position]
	if p.position < len(p.tokens)-1 {
		p.position++
	}
	return t
}

// expression := term (('+' | '-') term)*
func (p *parser) parseExpression() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.current().typ {
		case tokenPlus:
			p.advance()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case tokenMinus:
			p.advance()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

// term := factor (('*' | '/') factor)*
func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.current().typ {
		case tokenStar:
			p.advance()
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			left *= right
		case tokenSlash:
			p.advance()
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, ErrDivisionByZero
			}
			left /= right
		default:
			return left, nil
		}
	}
}

// factor := number | '-' factor | '(' expression ')'
func (p *parser) parseFactor() (float64, error) {
	t := p.current()
	switch t.typ {
	case tokenNumber:
		p.advance()
		return t.value, nil
	case tokenMinus:
		p.advance()
		value, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -value, nil
	case tokenLParen:
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return 0, err
		}
		if p.current().typ != tokenRParen {
			return 0, fmt.Errorf("%w: unclosed parenthesis at position %d", ErrInvalidExpression, t.position)
		}
		p.advance()
		return value, nil
	case tokenEOF:
		return 0, fmt.Errorf("%w: unexpected end of input", ErrInvalidExpression)
	default:
		return 0, fmt.Errorf("%w: unexpected token at position %d", ErrInvalidExpression, t.position)
	}
}

// Format renders a result the way the console prints it: integral values
// without a trailing ".000000".
func Format(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
