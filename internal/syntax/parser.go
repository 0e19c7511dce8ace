// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package syntax

import (
	"fmt"
	"strconv"

	"github.com/runelang/rune-core/internal/hir"
	"github.com/runelang/rune-core/internal/meta"
	"github.com/runelang/rune-core/internal/path"
	"github.com/runelang/rune-core/internal/source"
	"github.com/runelang/rune-core/internal/value"
)

// ParseError reports a single malformed construct; the Parser keeps going
// after recording one, the same recover-and-continue shape the teacher's
// own sexp parser uses so one typo doesn't hide every other mistake in the
// same file.
type ParseError struct {
	Span source.Span
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Start(), e.Span.End(), e.Msg)
}

// Parser is a recursive-descent parser over one source text, producing
// hir.Item/hir.Expr trees rooted at modulePath.
type Parser struct {
	lex        *Lexer
	tok        Token
	peeked     *Token
	modulePath path.Item
	errs       []error
}

// NewParser constructs a Parser over text, resolving every parsed item's
// path relative to modulePath.
func NewParser(text string, modulePath path.Item) *Parser {
	p := &Parser{lex: NewLexer(text), modulePath: modulePath}
	p.advance()

	return p
}

func (p *Parser) advance() {
	if p.peeked != nil {
		p.tok = *p.peeked
		p.peeked = nil

		return
	}

	p.tok = p.lex.Next()
}

func (p *Parser) peekNext() Token {
	if p.peeked == nil {
		t := p.lex.Next()
		p.peeked = &t
	}

	return *p.peeked
}

func (p *Parser) is(kind TokenKind, text string) bool {
	return p.tok.Kind == kind && p.tok.Text == text
}

func (p *Parser) isKeyword(kw string) bool { return p.is(TokKeyword, kw) }
func (p *Parser) isPunct(s string) bool    { return p.is(TokPunct, s) }

func (p *Parser) expectPunct(s string) source.Span {
	if !p.isPunct(s) {
		p.fail(fmt.Sprintf("expected %q, found %q", s, p.tok.Text))
		return p.tok.Span
	}

	span := p.tok.Span
	p.advance()

	return span
}

func (p *Parser) fail(msg string) {
	p.errs = append(p.errs, &ParseError{Span: p.tok.Span, Msg: msg})
}

// Errors returns every error recorded while parsing.
func (p *Parser) Errors() []error { return p.errs }

// ParseItems parses every top-level item in the source text, recovering
// after a malformed one by skipping a single token whenever parseItem made
// no progress, so the rest of the file is still parsed.
func (p *Parser) ParseItems() []hir.Item {
	var items []hir.Item

	for p.tok.Kind != TokEOF {
		before := p.tok
		item := p.parseItem()

		if item != nil {
			items = append(items, item)
		}

		if p.tok == before {
			// Guaranteed forward progress even on a token parseItem
			// didn't know what to do with.
			p.advance()
		}
	}

	return items
}

// parseItem dispatches on the leading token, following the item table:
// `use | enum | struct | impl | (async) fn | mod | const | ident(macro-call)`.
func (p *Parser) parseItem() hir.Item {
	start := p.tok.Span

	vis := meta.Private
	if p.isKeyword("pub") {
		vis = meta.Public
		p.advance()
	}

	switch {
	case p.isKeyword("use"):
		return p.parseUse(start)
	case p.isKeyword("enum"):
		return p.parseEnum(start, vis)
	case p.isKeyword("struct"):
		return p.parseStruct(start, vis)
	case p.isKeyword("impl"):
		return p.parseImpl(start)
	case p.isKeyword("mod"):
		return p.parseMod(start, vis)
	case p.isKeyword("const"):
		return p.parseConst(start, vis)
	case p.isKeyword("async"):
		p.advance()
		return p.parseFn(start, vis)
	case p.isKeyword("fn"):
		return p.parseFn(start, vis)
	case p.tok.Kind == TokIdent && p.peekNext().Text == "!":
		return p.parseMacroCall(start)
	default:
		p.fail(fmt.Sprintf("expected an item, found %q", p.tok.Text))
		return nil
	}
}

func (p *Parser) parseUse(start source.Span) hir.Item {
	p.advance() // 'use'

	imported := p.parsePath()
	end := p.expectPunct(";")

	return hir.NewUseItem(start.Union(end), p.modulePath, imported)
}

func (p *Parser) parseEnum(start source.Span, vis meta.Visibility) hir.Item {
	p.advance() // 'enum'

	name := p.expectIdent()
	itemPath := p.modulePath.Extend(name)

	p.expectPunct("{")

	var variants []string

	for !p.isPunct("}") && p.tok.Kind != TokEOF {
		variants = append(variants, p.expectIdent())

		if p.isPunct(",") {
			p.advance()
		}
	}

	end := p.expectPunct("}")

	return hir.NewEnumItem(start.Union(end), itemPath, vis, variants)
}

func (p *Parser) parseStruct(start source.Span, vis meta.Visibility) hir.Item {
	p.advance() // 'struct'

	name := p.expectIdent()
	itemPath := p.modulePath.Extend(name)

	p.expectPunct("{")

	var fields []string

	for !p.isPunct("}") && p.tok.Kind != TokEOF {
		fields = append(fields, p.expectIdent())

		if p.isPunct(":") {
			p.advance()
			p.expectIdent() // field type name, not modeled further
		}

		if p.isPunct(",") {
			p.advance()
		}
	}

	end := p.expectPunct("}")

	return hir.NewStructItem(start.Union(end), itemPath, vis, fields)
}

func (p *Parser) parseImpl(start source.Span) hir.Item {
	p.advance() // 'impl'

	target := p.parsePath()
	itemPath := p.modulePath.Extend("impl$" + target.String())

	p.expectPunct("{")

	sub := &Parser{lex: p.lex, tok: p.tok, modulePath: itemPath}

	var items []hir.Item

	for !sub.isPunct("}") && sub.tok.Kind != TokEOF {
		if it := sub.parseItem(); it != nil {
			items = append(items, it)
		}
	}

	end := sub.expectPunct("}")
	p.tok, p.peeked, p.errs = sub.tok, sub.peeked, append(p.errs, sub.errs...)

	return hir.NewImplItem(start.Union(end), p.modulePath, target, items)
}

func (p *Parser) parseMod(start source.Span, vis meta.Visibility) hir.Item {
	p.advance() // 'mod'

	name := p.expectIdent()
	itemPath := p.modulePath.Extend(name)

	p.expectPunct("{")

	sub := &Parser{lex: p.lex, tok: p.tok, modulePath: itemPath}

	var items []hir.Item

	for !sub.isPunct("}") && sub.tok.Kind != TokEOF {
		if it := sub.parseItem(); it != nil {
			items = append(items, it)
		}
	}

	end := sub.expectPunct("}")
	p.tok, p.peeked, p.errs = sub.tok, sub.peeked, append(p.errs, sub.errs...)

	return hir.NewModuleItem(start.Union(end), itemPath, vis, items, "")
}

func (p *Parser) parseConst(start source.Span, vis meta.Visibility) hir.Item {
	p.advance() // 'const'

	if p.isKeyword("fn") {
		p.advance()

		name := p.expectIdent()
		itemPath := p.modulePath.Extend(name)
		args := p.parseParamList()
		body := p.parseBlock()

		return hir.NewConstFnItem(start.Union(body.Span()), itemPath, vis, args, body, "")
	}

	name := p.expectIdent()
	itemPath := p.modulePath.Extend(name)

	p.expectPunct("=")

	value := p.parseExpr()
	end := p.expectPunct(";")

	return hir.NewConstItem(start.Union(end), itemPath, vis, value, "")
}

func (p *Parser) parseFn(start source.Span, vis meta.Visibility) hir.Item {
	p.advance() // 'fn'

	name := p.expectIdent()
	itemPath := p.modulePath.Extend(name)
	args := p.parseParamList()
	body := p.parseBlock()

	return hir.NewFnItem(start.Union(body.Span()), itemPath, vis, args, body, "")
}

func (p *Parser) parseMacroCall(start source.Span) hir.Item {
	callee := p.parsePath()

	p.expectPunct("!")

	// Macro bodies are opaque token trees to this core; skip balanced
	// parens/braces up to and including the trailing separator the
	// grammar requires after every macro invocation.
	if p.isPunct("(") || p.isPunct("{") {
		p.skipBalanced()
	}

	end := p.tok.Span
	if p.isPunct(";") {
		end = p.expectPunct(";")
	} else {
		p.fail("macro call must be followed by a trailing separator")
	}

	return hir.NewMacroItem(start.Union(end), p.modulePath, callee, nil)
}

func (p *Parser) skipBalanced() {
	open := p.tok.Text

	close := map[string]string{"(": ")", "{": "}", "[": "]"}[open]
	depth := 0

	for {
		if p.isPunct(open) {
			depth++
		} else if p.isPunct(close) {
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		} else if p.tok.Kind == TokEOF {
			return
		}

		p.advance()
	}
}

func (p *Parser) parseParamList() []string {
	p.expectPunct("(")

	var args []string

	for !p.isPunct(")") && p.tok.Kind != TokEOF {
		args = append(args, p.expectIdent())

		if p.isPunct(":") {
			p.advance()
			p.expectIdent() // parameter type name, unused by the IR Compiler
		}

		if p.isPunct(",") {
			p.advance()
		}
	}

	p.expectPunct(")")

	return args
}

func (p *Parser) expectIdent() string {
	if p.tok.Kind != TokIdent {
		p.fail(fmt.Sprintf("expected an identifier, found %q", p.tok.Text))
		return ""
	}

	name := p.tok.Text
	p.advance()

	return name
}

func (p *Parser) parsePath() path.Item {
	name := p.expectIdent()
	it := path.New(name)

	for p.isPunct("::") {
		p.advance()
		it = it.Extend(p.expectIdent())
	}

	return it
}

// ---- expressions ----

// parseExpr parses a full expression, the entry point for const values,
// statement expressions, call arguments, and everything in between.
func (p *Parser) parseExpr() hir.Expr {
	return p.parseAssign()
}

func (p *Parser) parseAssign() hir.Expr {
	left := p.parseOr()

	if p.isPunct("=") {
		start := left.Span()
		p.advance()

		right := p.parseAssign()

		return hir.NewAssign(start.Union(right.Span()), left, right)
	}

	if p.tok.Kind == TokPunct {
		if op, ok := compoundOps[p.tok.Text]; ok {
			start := left.Span()
			p.advance()

			right := p.parseAssign()

			return hir.NewCompoundAssign(start.Union(right.Span()), left, op, right)
		}
	}

	return left
}

var compoundOps = map[string]hir.BinOp{"+=": hir.Add, "-=": hir.Sub, "*=": hir.Mul, "/=": hir.Div}

// binOps lists each precedence tier, loosest first.
var binOps = []map[string]hir.BinOp{
	{"||": hir.Or},
	{"&&": hir.And},
	{"==": hir.Eq, "!=": hir.Neq},
	{"<": hir.Lt, ">": hir.Gt, "<=": hir.Le, ">=": hir.Ge},
	{"+": hir.Add, "-": hir.Sub},
	{"*": hir.Mul, "/": hir.Div},
}

func (p *Parser) parseOr() hir.Expr { return p.parseBinaryTier(0) }

func (p *Parser) parseBinaryTier(tier int) hir.Expr {
	if tier >= len(binOps) {
		return p.parseUnary()
	}

	left := p.parseBinaryTier(tier + 1)

	for {
		op, ok := binOps[tier][p.tok.Text]
		if !ok || p.tok.Kind != TokPunct {
			return left
		}

		p.advance()

		right := p.parseBinaryTier(tier + 1)
		left = hir.NewBinary(left.Span().Union(right.Span()), op, left, right)
	}
}

func (p *Parser) parseUnary() hir.Expr {
	start := p.tok.Span

	if p.isPunct("-") {
		p.advance()
		operand := p.parseUnary()

		return hir.NewUnary(start.Union(operand.Span()), hir.Neg, operand)
	}

	if p.isPunct("!") {
		p.advance()
		operand := p.parseUnary()

		return hir.NewUnary(start.Union(operand.Span()), hir.Not, operand)
	}

	return p.parsePostfix()
}

func (p *Parser) parsePostfix() hir.Expr {
	expr := p.parsePrimary()

	for {
		switch {
		case p.isPunct("."):
			dot := p.tok.Span
			p.advance()

			if p.tok.Kind == TokInt {
				n, _ := strconv.ParseUint(p.tok.Text, 10, 32)
				idxSpan := p.tok.Span
				p.advance()
				expr = hir.NewIndex(expr.Span().Union(idxSpan), expr, hir.NewLit(idxSpan, value.Int(int64(n))))

				continue
			}

			name := p.expectIdent()
			expr = hir.NewField(expr.Span().Union(dot), expr, name)
		case p.isPunct("["):
			p.advance()

			idx := p.parseExpr()
			end := p.expectPunct("]")
			expr = hir.NewIndex(expr.Span().Union(end), expr, idx)
		case p.isPunct("(") && isCallable(expr):
			args := p.parseArgList()
			end := p.tok.Span
			callee, _ := expr.(*hir.Ident)
			expr = hir.NewCall(expr.Span().Union(end), path.New(callee.Name), args)
		case p.isPunct("::") && isCallable(expr):
			callee := path.New(expr.(*hir.Ident).Name)
			for p.isPunct("::") {
				p.advance()
				callee = callee.Extend(p.expectIdent())
			}

			args := p.parseArgList()
			end := p.tok.Span
			expr = hir.NewCall(expr.Span().Union(end), callee, args)
		default:
			return expr
		}
	}
}

func isCallable(e hir.Expr) bool {
	_, ok := e.(*hir.Ident)
	return ok
}

func (p *Parser) parseArgList() []hir.Expr {
	p.expectPunct("(")

	var args []hir.Expr

	for !p.isPunct(")") && p.tok.Kind != TokEOF {
		args = append(args, p.parseExpr())

		if p.isPunct(",") {
			p.advance()
		}
	}

	p.expectPunct(")")

	return args
}

func (p *Parser) parsePrimary() hir.Expr {
	start := p.tok.Span

	switch {
	case p.tok.Kind == TokInt:
		n, _ := strconv.ParseInt(p.tok.Text, 10, 64)
		p.advance()

		return hir.NewLit(start, value.Int(n))
	case p.tok.Kind == TokFloat:
		f, _ := strconv.ParseFloat(p.tok.Text, 64)
		p.advance()

		return hir.NewLit(start, value.Float(f))
	case p.tok.Kind == TokString:
		s := p.tok.Text
		p.advance()

		return hir.NewLit(start, value.String(s))
	case p.isKeyword("true"):
		p.advance()
		return hir.NewLit(start, value.Bool(true))
	case p.isKeyword("false"):
		p.advance()
		return hir.NewLit(start, value.Bool(false))
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("match"):
		return p.parseMatch()
	case p.isKeyword("loop"):
		return p.parseLoop()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("break"):
		return p.parseBreak()
	case p.isKeyword("continue"):
		p.advance()

		return hir.NewContinue(start, "")
	case p.isPunct("{"):
		return p.parseBlock()
	case p.isPunct("("):
		p.advance()

		if p.isPunct(")") {
			end := p.expectPunct(")")
			return hir.NewTupleLit(start.Union(end), nil)
		}

		first := p.parseExpr()

		if p.isPunct(",") {
			elems := []hir.Expr{first}

			for p.isPunct(",") {
				p.advance()
				if p.isPunct(")") {
					break
				}

				elems = append(elems, p.parseExpr())
			}

			end := p.expectPunct(")")

			return hir.NewTupleLit(start.Union(end), elems)
		}

		p.expectPunct(")")

		return first
	case p.isPunct("["):
		return p.parseVec()
	case p.tok.Kind == TokIdent:
		name := p.tok.Text
		p.advance()

		return hir.NewIdent(start, name)
	default:
		p.fail(fmt.Sprintf("expected an expression, found %q", p.tok.Text))
		p.advance()

		return hir.NewLit(start, value.Unit())
	}
}

func (p *Parser) parseVec() *hir.VecLit {
	start := p.expectPunct("[")

	var elems []hir.Expr

	for !p.isPunct("]") && p.tok.Kind != TokEOF {
		elems = append(elems, p.parseExpr())

		if p.isPunct(",") {
			p.advance()
		}
	}

	end := p.expectPunct("]")

	return hir.NewVecLit(start.Union(end), elems)
}

func (p *Parser) parseIf() hir.Expr {
	start := p.tok.Span
	p.advance() // 'if'

	cond := p.parseExpr()
	then := p.parseBlock()

	var els hir.Expr
	if p.isKeyword("else") {
		p.advance()

		if p.isKeyword("if") {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}

	end := then.Span()
	if els != nil {
		end = els.Span()
	}

	return hir.NewIf(start.Union(end), cond, then, els)
}

func (p *Parser) parseMatch() hir.Expr {
	start := p.tok.Span
	p.advance() // 'match'

	scrutinee := p.parseExpr()

	p.expectPunct("{")

	var arms []hir.MatchArm

	for !p.isPunct("}") && p.tok.Kind != TokEOF {
		var pattern *value.ConstValue

		if p.tok.Kind == TokIdent && p.tok.Text == "_" {
			p.advance()
		} else {
			lit := p.parsePrimary()
			if l, ok := lit.(*hir.Lit); ok {
				v := l.Value
				pattern = &v
			}
		}

		p.expectPunct("=>")

		body := p.parseExpr()
		arms = append(arms, hir.MatchArm{Pattern: pattern, Body: body})

		if p.isPunct(",") {
			p.advance()
		}
	}

	end := p.expectPunct("}")

	return hir.NewMatch(start.Union(end), scrutinee, arms)
}

func (p *Parser) parseLoop() hir.Expr {
	start := p.tok.Span
	p.advance() // 'loop'

	body := p.parseBlock()

	return hir.NewLoop(start.Union(body.Span()), "", body)
}

func (p *Parser) parseWhile() hir.Expr {
	start := p.tok.Span
	p.advance() // 'while'

	cond := p.parseExpr()
	body := p.parseBlock()

	return hir.NewWhile(start.Union(body.Span()), "", cond, body)
}

func (p *Parser) parseFor() hir.Expr {
	start := p.tok.Span
	p.advance() // 'for'

	varName := p.expectIdent()

	if !p.isKeyword("in") {
		p.fail("expected 'in' in for-loop")
	} else {
		p.advance()
	}

	iter := p.parseExpr()
	body := p.parseBlock()

	return hir.NewFor(start.Union(body.Span()), "", varName, iter, body)
}

func (p *Parser) parseBreak() hir.Expr {
	start := p.tok.Span
	p.advance() // 'break'

	var val hir.Expr

	end := start
	if !p.isPunct(";") && !p.isPunct("}") && p.tok.Kind != TokEOF {
		val = p.parseExpr()
		end = val.Span()
	}

	return hir.NewBreak(start.Union(end), "", val)
}

func (p *Parser) parseBlock() *hir.Block {
	start := p.expectPunct("{")

	var stmts []hir.Stmt

	for !p.isPunct("}") && p.tok.Kind != TokEOF {
		stmts = append(stmts, p.parseStmt())
	}

	end := p.expectPunct("}")

	return hir.NewBlock(start.Union(end), stmts)
}

func (p *Parser) parseStmt() hir.Stmt {
	start := p.tok.Span

	if p.isKeyword("let") {
		p.advance()

		name := p.expectIdent()

		p.expectPunct("=")

		val := p.parseExpr()
		end := p.expectPunct(";")

		return hir.Stmt{Span: start.Union(end), Let: name, Value: val}
	}

	val := p.parseExpr()
	end := val.Span()

	if p.isPunct(";") {
		end = p.expectPunct(";")
	}

	return hir.Stmt{Span: start.Union(end), Value: val}
}
