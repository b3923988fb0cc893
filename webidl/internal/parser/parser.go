package parser

import (
	"strings"

	"github.com/pixll/wasm-bridge/errors"
	"github.com/pixll/wasm-bridge/webidl/internal/ast"
	"github.com/pixll/wasm-bridge/webidl/internal/token"
)

type Parser struct {
	tokens []token.Token
	pos    int
}

func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token stream and returns the schema. Any
// malformed construct aborts the parse; there is no partial schema.
func (p *Parser) Parse() (*ast.Schema, error) {
	schema := &ast.Schema{}
	seen := make(map[string]bool)

	for {
		t := p.peek()
		if t == nil {
			return schema, nil
		}

		if t.Type == token.RBrace {
			return nil, errors.UnexpectedClose(t.Line)
		}
		if t.Type != token.Ident || t.Value != "interface" {
			return nil, errors.UnexpectedToken(t.Line, t.Value)
		}

		line := t.Line
		iface, err := p.parseInterface()
		if err != nil {
			return nil, err
		}
		if seen[iface.Name] {
			return nil, errors.DuplicateName(line, "", "interface", iface.Name)
		}
		seen[iface.Name] = true
		schema.Interfaces = append(schema.Interfaces, *iface)
	}
}

func (p *Parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *Parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *Parser) expect(typ token.Type, what string) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.Syntax(p.eofLine(), "unexpected end of input, expected %s", what)
	}
	if t.Type != typ {
		return nil, errors.Syntax(t.Line, "expected %s, got %q", what, t.Value)
	}
	return t, nil
}

// eofLine is the line reported for truncated input.
func (p *Parser) eofLine() int {
	if len(p.tokens) == 0 {
		return 1
	}
	return p.tokens[len(p.tokens)-1].Line
}

func (p *Parser) parseInterface() (*ast.Interface, error) {
	p.next() // "interface" keyword, checked by the caller

	name, err := p.expect(token.Ident, "interface name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBrace, `"{"`); err != nil {
		return nil, err
	}

	iface := &ast.Interface{Name: name.Value}
	methods := make(map[string]bool)
	attrs := make(map[string]bool)

	for {
		t := p.peek()
		if t == nil {
			return nil, errors.Syntax(p.eofLine(), "unexpected end of input in interface %q", iface.Name)
		}
		if t.Type == token.RBrace {
			p.next()
			if _, err := p.expect(token.Semi, `";" after "}"`); err != nil {
				return nil, err
			}
			return iface, nil
		}
		if err := p.parseMember(iface, methods, attrs); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseMember(iface *ast.Interface, methods, attrs map[string]bool) error {
	t := p.peek()
	if t.Type != token.Ident {
		return errors.Syntax(t.Line, "expected member declaration, got %q", t.Value)
	}

	if t.Value == "readonly" || t.Value == "attribute" {
		return p.parseAttribute(iface, attrs)
	}

	static := false
	if t.Value == "static" {
		p.next()
		static = true
	}

	typText, _, err := p.parseTypeText()
	if err != nil {
		return err
	}
	name, err := p.expect(token.Ident, "member name")
	if err != nil {
		return err
	}

	if nxt := p.peek(); nxt != nil && nxt.Type == token.LParen {
		return p.parseMethod(iface, methods, static, typText, name)
	}

	if static {
		return errors.Syntax(name.Line, `"static" is only valid on methods`)
	}

	// Attribute written without the attribute keyword.
	if _, err := p.expect(token.Semi, `";"`); err != nil {
		return err
	}
	if attrs[name.Value] {
		return errors.DuplicateName(name.Line, iface.Name, "attribute", name.Value)
	}
	attrs[name.Value] = true
	iface.Attributes = append(iface.Attributes, ast.Attribute{
		Name: name.Value,
		Type: ast.MapToken(typText),
	})
	return nil
}

func (p *Parser) parseAttribute(iface *ast.Interface, attrs map[string]bool) error {
	readonly := false
	if t := p.peek(); t != nil && t.Type == token.Ident && t.Value == "readonly" {
		p.next()
		readonly = true
	}
	if t := p.peek(); t != nil && t.Type == token.Ident && t.Value == "attribute" {
		p.next()
	}

	typText, _, err := p.parseTypeText()
	if err != nil {
		return err
	}
	name, err := p.expect(token.Ident, "attribute name")
	if err != nil {
		return err
	}
	if _, err := p.expect(token.Semi, `";"`); err != nil {
		return err
	}

	if attrs[name.Value] {
		return errors.DuplicateName(name.Line, iface.Name, "attribute", name.Value)
	}
	attrs[name.Value] = true
	iface.Attributes = append(iface.Attributes, ast.Attribute{
		Name:     name.Value,
		Type:     ast.MapToken(typText),
		Readonly: readonly,
	})
	return nil
}

func (p *Parser) parseMethod(iface *ast.Interface, methods map[string]bool, static bool, retText string, name *token.Token) error {
	p.next() // "("

	m := ast.Method{
		Name:       name.Value,
		ReturnType: ast.MapToken(retText),
		Static:     static,
	}

	if t := p.peek(); t != nil && t.Type == token.RParen {
		p.next()
	} else {
		for {
			arg, err := p.parseArgument()
			if err != nil {
				return err
			}
			m.Arguments = append(m.Arguments, *arg)

			t := p.next()
			if t == nil {
				return errors.Syntax(p.eofLine(), "unterminated argument list in %q", m.Name)
			}
			if t.Type == token.RParen {
				break
			}
			if t.Type != token.Comma {
				return errors.Syntax(t.Line, `expected "," or ")", got %q`, t.Value)
			}
		}
	}

	if _, err := p.expect(token.Semi, `";"`); err != nil {
		return err
	}

	if methods[m.Name] {
		return errors.DuplicateName(name.Line, iface.Name, "method", m.Name)
	}
	methods[m.Name] = true
	iface.Methods = append(iface.Methods, m)
	return nil
}

func (p *Parser) parseArgument() (*ast.Argument, error) {
	optional := false
	if t := p.peek(); t != nil && t.Type == token.Ident && t.Value == "optional" {
		p.next()
		optional = true
	}

	typText, _, err := p.parseTypeText()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident, "argument name")
	if err != nil {
		return nil, err
	}

	arg := &ast.Argument{
		Name:     name.Value,
		Type:     ast.MapToken(typText),
		Optional: optional,
	}

	if t := p.peek(); t != nil && t.Type == token.Assign {
		p.next()
		if err := p.skipDefault(); err != nil {
			return nil, err
		}
	}
	return arg, nil
}

// parseTypeText reassembles the textual form of one type from the token
// stream; MapToken interprets the text. "unsigned" joins its following
// width word, Promise<...> is collected through matching angle brackets,
// and a trailing ? is consumed.
func (p *Parser) parseTypeText() (string, int, error) {
	t, err := p.expect(token.Ident, "type")
	if err != nil {
		return "", 0, err
	}
	line := t.Line

	var sb strings.Builder
	sb.WriteString(t.Value)

	if t.Value == "unsigned" {
		w, err := p.expect(token.Ident, `"short" or "long" after "unsigned"`)
		if err != nil {
			return "", 0, err
		}
		if w.Value != "short" && w.Value != "long" {
			return "", 0, errors.Syntax(w.Line, `expected "short" or "long" after "unsigned", got %q`, w.Value)
		}
		sb.WriteByte(' ')
		sb.WriteString(w.Value)
	}

	if nxt := p.peek(); nxt != nil && nxt.Type == token.LAngle {
		depth := 0
		prevIdent := false
		for {
			nt := p.next()
			if nt == nil {
				return "", 0, errors.Syntax(p.eofLine(), "unterminated type parameter in %q", sb.String())
			}
			switch nt.Type {
			case token.LAngle:
				depth++
				sb.WriteByte('<')
				prevIdent = false
			case token.RAngle:
				depth--
				sb.WriteByte('>')
				prevIdent = false
			case token.Ident:
				if prevIdent {
					sb.WriteByte(' ')
				}
				sb.WriteString(nt.Value)
				prevIdent = true
			case token.Question:
				sb.WriteByte('?')
				prevIdent = false
			default:
				return "", 0, errors.Syntax(nt.Line, "unexpected %q in type parameter", nt.Value)
			}
			if depth == 0 {
				break
			}
		}
	}

	if nxt := p.peek(); nxt != nil && nxt.Type == token.Question {
		p.next()
	}

	return sb.String(), line, nil
}

// skipDefault consumes one default value expression. The text is discarded;
// only its extent matters.
func (p *Parser) skipDefault() error {
	depth := 0
	consumed := 0
	for {
		t := p.peek()
		if t == nil {
			return errors.Syntax(p.eofLine(), "unterminated default value")
		}
		if depth == 0 && (t.Type == token.Comma || t.Type == token.RParen) {
			if consumed == 0 {
				return errors.Syntax(t.Line, "missing default value")
			}
			return nil
		}
		switch t.Type {
		case token.LBrace, token.LBracket, token.LParen:
			depth++
		case token.RBrace, token.RBracket, token.RParen:
			depth--
			if depth < 0 {
				return errors.Syntax(t.Line, "unbalanced %q in default value", t.Value)
			}
		case token.Semi:
			return errors.Syntax(t.Line, `unexpected ";" in default value`)
		}
		p.next()
		consumed++
	}
}
