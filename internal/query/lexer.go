// Package query compiles composition filter expressions into predicates
// evaluated against a template and a set of context values.
//
// Grammar:
//
//	expr    := and ( "|" and )*
//	and     := unary ( "&" unary )*
//	unary   := "!" unary | "(" expr ")" | test
//	test    := ref op value
//	ref     := IDENT | "$" IDENT
//	op      := "==" | "!=" | "in"
//	value   := IDENT | STRING | "$" IDENT | "[" value ( "," value )* "]"
//
// Example: $projectType == SplitView & framework in [MVVMBasic, Prism] & kind == Page
package query

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokString
	tokContext
	tokEq
	tokNeq
	tokIn
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
)

var tokenNames = map[tokenType]string{
	tokEOF:      "end of filter",
	tokIdent:    "identifier",
	tokString:   "string",
	tokContext:  "context reference",
	tokEq:       "'=='",
	tokNeq:      "'!='",
	tokIn:       "'in'",
	tokAnd:      "'&'",
	tokOr:       "'|'",
	tokNot:      "'!'",
	tokLParen:   "'('",
	tokRParen:   "')'",
	tokLBracket: "'['",
	tokRBracket: "']'",
	tokComma:    "','",
}

func (t tokenType) String() string {
	return tokenNames[t]
}

type token struct {
	typ tokenType
	val string
	pos int
}

// SyntaxError reports a malformed filter expression.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("filter syntax error at offset %d: %s", e.Pos, e.Msg)
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' || r == '-'
}

// lex splits a filter into tokens. Identifiers may contain dots, dashes and
// underscores so template identities can be written unquoted.
func lex(src string) ([]token, error) {
	var tokens []token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '&':
			// "&&" is accepted as an alias.
			tokens = append(tokens, token{typ: tokAnd, val: "&", pos: i})
			i++
			if i < len(runes) && runes[i] == '&' {
				i++
			}
		case r == '|':
			tokens = append(tokens, token{typ: tokOr, val: "|", pos: i})
			i++
			if i < len(runes) && runes[i] == '|' {
				i++
			}
		case r == '=':
			if i+1 >= len(runes) || runes[i+1] != '=' {
				return nil, &SyntaxError{Pos: i, Msg: "expected '=='"}
			}
			tokens = append(tokens, token{typ: tokEq, val: "==", pos: i})
			i += 2
		case r == '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, token{typ: tokNeq, val: "!=", pos: i})
				i += 2
			} else {
				tokens = append(tokens, token{typ: tokNot, val: "!", pos: i})
				i++
			}
		case r == '(':
			tokens = append(tokens, token{typ: tokLParen, val: "(", pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{typ: tokRParen, val: ")", pos: i})
			i++
		case r == '[':
			tokens = append(tokens, token{typ: tokLBracket, val: "[", pos: i})
			i++
		case r == ']':
			tokens = append(tokens, token{typ: tokRBracket, val: "]", pos: i})
			i++
		case r == ',':
			tokens = append(tokens, token{typ: tokComma, val: ",", pos: i})
			i++
		case r == '"' || r == '\'':
			start := i
			quote := r
			i++
			var sb strings.Builder
			closed := false
			for i < len(runes) {
				if runes[i] == '\\' && i+1 < len(runes) {
					sb.WriteRune(runes[i+1])
					i += 2
					continue
				}
				if runes[i] == quote {
					closed = true
					i++
					break
				}
				sb.WriteRune(runes[i])
				i++
			}
			if !closed {
				return nil, &SyntaxError{Pos: start, Msg: "unterminated string"}
			}
			tokens = append(tokens, token{typ: tokString, val: sb.String(), pos: start})
		case r == '$':
			start := i
			i++
			j := i
			for j < len(runes) && isIdentRune(runes[j]) {
				j++
			}
			if j == i {
				return nil, &SyntaxError{Pos: start, Msg: "expected context key after '$'"}
			}
			tokens = append(tokens, token{typ: tokContext, val: string(runes[i:j]), pos: start})
			i = j
		case isIdentRune(r):
			start := i
			for i < len(runes) && isIdentRune(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			if word == "in" {
				tokens = append(tokens, token{typ: tokIn, val: word, pos: start})
			} else {
				tokens = append(tokens, token{typ: tokIdent, val: word, pos: start})
			}
		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	tokens = append(tokens, token{typ: tokEOF, pos: len(runes)})
	return tokens, nil
}
