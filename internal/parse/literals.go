package parse

import (
	"strconv"
	"strings"

	"github.com/burilang/buric/internal/ast"
	"github.com/burilang/buric/internal/source"
)

// pIdentifier parses `[a-z_][A-Za-z0-9_]*`, rejecting keywords.
func pIdentifier(p *Parser, in source.Span) (*ast.IdentifierExpr, source.Span, bool) {
	r, _ := in.FirstRune()
	if !isLowerStart(r) {
		p.fail(in.Pos(), "expected identifier")
		return nil, in, false
	}
	text, rest := scanWhile(in, isIdentTail)
	if isKeyword(text) {
		p.fail(in.Pos(), "expected identifier, found keyword '"+text+"'")
		return nil, in, false
	}
	consumed := in.Take(len(text))
	return ast.NewIdentifierExpr(consumed, text), rest, true
}

// pRawIdentifier is pIdentifier without wrapping into an Expression
// node, for use in binder positions (parameter names, declaration
// names, import names) that carry no independent type of their own.
func pRawIdentifier(p *Parser, in source.Span) (string, source.Span, source.Span, bool) {
	r, _ := in.FirstRune()
	if !isLowerStart(r) {
		p.fail(in.Pos(), "expected identifier")
		return "", source.Span{}, in, false
	}
	text, rest := scanWhile(in, isIdentTail)
	if isKeyword(text) {
		p.fail(in.Pos(), "expected identifier, found keyword '"+text+"'")
		return "", source.Span{}, in, false
	}
	return text, in.Take(len(text)), rest, true
}

// pTypeIdentifier parses one uppercase char then `[A-Za-z0-9_]*`.
func pTypeIdentifier(p *Parser, in source.Span) (string, source.Span, source.Span, bool) {
	r, w := in.FirstRune()
	if !isUpperStart(r) {
		p.fail(in.Pos(), "expected type identifier")
		return "", source.Span{}, in, false
	}
	rest := in.Slice(w, in.Len())
	tail, rest := scanWhile(rest, isIdentTail)
	text := string(r) + tail
	return text, in.Take(len(text)), rest, true
}

// pTagIdentifier parses `#[A-Za-z0-9_]+`, the name following `#`.
func pTagIdentifier(p *Parser, in source.Span) (string, source.Span, source.Span, bool) {
	if !in.HasPrefix("#") {
		p.fail(in.Pos(), "expected '#'")
		return "", source.Span{}, in, false
	}
	afterHash := in.Slice(1, in.Len())
	name, rest := scanWhile(afterHash, isIdentTail)
	if name == "" {
		p.fail(afterHash.Pos(), "expected tag name after '#'")
		return "", source.Span{}, in, false
	}
	full := in.Take(1 + len(name))
	return name, full, rest, true
}

// pInteger parses one-or-more decimal digits, saturating on overflow.
func pInteger(p *Parser, in source.Span) (*ast.IntegerExpr, source.Span, bool) {
	r, _ := in.FirstRune()
	if !isDigit(r) {
		p.fail(in.Pos(), "expected integer")
		return nil, in, false
	}
	text, rest := scanWhile(in, isDigit)
	consumed := in.Take(len(text))
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		value = ^uint64(0)
	}
	return ast.NewIntegerExpr(consumed, value), rest, true
}

// pBoolean parses `true` or `false`.
func pBoolean(p *Parser, in source.Span) (*ast.BooleanExpr, source.Span, bool) {
	if in.HasPrefix("true") && !followsIdentTail(in, 4) {
		return ast.NewBooleanExpr(in.Take(4), true), in.Slice(4, in.Len()), true
	}
	if in.HasPrefix("false") && !followsIdentTail(in, 5) {
		return ast.NewBooleanExpr(in.Take(5), false), in.Slice(5, in.Len()), true
	}
	p.fail(in.Pos(), "expected boolean literal")
	return nil, in, false
}

func followsIdentTail(in source.Span, at int) bool {
	if at >= in.Len() {
		return false
	}
	r, _ := source.New(in.Text[at:]).FirstRune()
	return isIdentTail(r)
}

// pStringLiteral parses `"…"` with C-style escapes.
func pStringLiteral(p *Parser, in source.Span) (*ast.StringExpr, source.Span, bool) {
	if !in.HasPrefix("\"") {
		p.fail(in.Pos(), "expected string literal")
		return nil, in, false
	}
	body := in.Slice(1, in.Len())
	var sb strings.Builder
	i := 0
	for {
		if i >= body.Len() {
			p.fail(in.Pos(), "unterminated string literal")
			return nil, in, false
		}
		c := body.Text[i]
		if c == '"' {
			i++
			break
		}
		if c == '\\' {
			if i+1 >= body.Len() {
				p.fail(in.Pos(), "unterminated escape in string literal")
				return nil, in, false
			}
			esc := body.Text[i+1]
			switch esc {
			case 'b':
				sb.WriteByte('\b')
				i += 2
			case 't':
				sb.WriteByte('\t')
				i += 2
			case 'n':
				sb.WriteByte('\n')
				i += 2
			case 'v':
				sb.WriteByte('\v')
				i += 2
			case 'f':
				sb.WriteByte('\f')
				i += 2
			case 'r':
				sb.WriteByte('\r')
				i += 2
			case '"':
				sb.WriteByte('"')
				i += 2
			case '\'':
				sb.WriteByte('\'')
				i += 2
			case '\\':
				sb.WriteByte('\\')
				i += 2
			case 'x':
				if i+3 >= body.Len() {
					p.fail(in.Pos(), "incomplete \\x escape in string literal")
					return nil, in, false
				}
				hex := body.Text[i+2 : i+4]
				v, err := strconv.ParseUint(hex, 16, 8)
				if err != nil {
					p.fail(in.Pos(), "invalid \\x escape in string literal")
					return nil, in, false
				}
				sb.WriteByte(byte(v))
				i += 4
			default:
				sb.WriteByte(esc)
				i += 2
			}
			continue
		}
		r, w := source.New(body.Text[i:]).FirstRune()
		sb.WriteRune(r)
		i += w
	}
	consumed := in.Take(i + 1)
	rest := in.Slice(i+1, in.Len())
	return ast.NewStringExpr(consumed, sb.String()), rest, true
}
