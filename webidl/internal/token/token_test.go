package token

import (
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			"empty",
			"",
			nil,
		},
		{
			"braces",
			"{}",
			[]Token{{"{", LBrace, 1}, {"}", RBrace, 1}},
		},
		{
			"interface header",
			"interface GPUAdapter {",
			[]Token{{"interface", Ident, 1}, {"GPUAdapter", Ident, 1}, {"{", LBrace, 1}},
		},
		{
			"close marker",
			"};",
			[]Token{{"}", RBrace, 1}, {";", Semi, 1}},
		},
		{
			"whitespace",
			"  interface   Foo  ",
			[]Token{{"interface", Ident, 1}, {"Foo", Ident, 1}},
		},
		{
			"newlines",
			"interface\nFoo\n{",
			[]Token{{"interface", Ident, 1}, {"Foo", Ident, 2}, {"{", LBrace, 3}},
		},
		{
			"method",
			"Promise<GPUDevice> requestDevice();",
			[]Token{
				{"Promise", Ident, 1}, {"<", LAngle, 1}, {"GPUDevice", Ident, 1}, {">", RAngle, 1},
				{"requestDevice", Ident, 1}, {"(", LParen, 1}, {")", RParen, 1}, {";", Semi, 1},
			},
		},
		{
			"attribute",
			"readonly attribute DOMString name;",
			[]Token{
				{"readonly", Ident, 1}, {"attribute", Ident, 1}, {"DOMString", Ident, 1},
				{"name", Ident, 1}, {";", Semi, 1},
			},
		},
		{
			"arguments with default",
			"(optional object descriptor = {})",
			[]Token{
				{"(", LParen, 1}, {"optional", Ident, 1}, {"object", Ident, 1},
				{"descriptor", Ident, 1}, {"=", Assign, 1}, {"{", LBrace, 1}, {"}", RBrace, 1},
				{")", RParen, 1},
			},
		},
		{
			"nullable",
			"GPUDevice?",
			[]Token{{"GPUDevice", Ident, 1}, {"?", Question, 1}},
		},
		{
			"brackets",
			"[]",
			[]Token{{"[", LBracket, 1}, {"]", RBracket, 1}},
		},
		{
			"number",
			"42",
			[]Token{{"42", Number, 1}},
		},
		{
			"negative_number",
			"-42",
			[]Token{{"-42", Number, 1}},
		},
		{
			"hex_number",
			"0xFF",
			[]Token{{"0xFF", Number, 1}},
		},
		{
			"float",
			"3.14",
			[]Token{{"3.14", Number, 1}},
		},
		{
			"string",
			`"hello"`,
			[]Token{{"hello", String, 1}},
		},
		{
			"string_escape",
			`"say \"hi\""`,
			[]Token{{`say \"hi\"`, String, 1}},
		},
		{
			"line_comment",
			"// comment\ninterface Foo",
			[]Token{{"interface", Ident, 2}, {"Foo", Ident, 2}},
		},
		{
			"block_comment",
			"/* comment */ interface",
			[]Token{{"interface", Ident, 1}},
		},
		{
			"block_comment_multiline",
			"/* one\ntwo */ interface",
			[]Token{{"interface", Ident, 2}},
		},
		{
			"underscore_identifier",
			"_private name_2",
			[]Token{{"_private", Ident, 1}, {"name_2", Ident, 1}},
		},
		{
			"illegal rune",
			"@",
			[]Token{{"@", Illegal, 1}},
		},
		{
			"illegal among valid",
			"interface # Foo",
			[]Token{{"interface", Ident, 1}, {"#", Illegal, 1}, {"Foo", Ident, 1}},
		},
		{
			"full interface",
			"interface GPU {\n\tPromise<GPUAdapter> requestAdapter();\n};",
			[]Token{
				{"interface", Ident, 1}, {"GPU", Ident, 1}, {"{", LBrace, 1},
				{"Promise", Ident, 2}, {"<", LAngle, 2}, {"GPUAdapter", Ident, 2}, {">", RAngle, 2},
				{"requestAdapter", Ident, 2}, {"(", LParen, 2}, {")", RParen, 2}, {";", Semi, 2},
				{"}", RBrace, 3}, {";", Semi, 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("token count mismatch: got %d, want %d\ngot: %v", len(tokens), len(tt.expected), tokens)
			}
			for i, tok := range tokens {
				exp := tt.expected[i]
				if tok.Type != exp.Type || tok.Value != exp.Value || tok.Line != exp.Line {
					t.Errorf("token %d mismatch:\n  got:  %+v\n  want: %+v", i, tok, exp)
				}
			}
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		want string
		typ  Type
	}{
		{"identifier", Ident},
		{"number", Number},
		{"string", String},
		{"'{'", LBrace},
		{"'}'", RBrace},
		{"'('", LParen},
		{"')'", RParen},
		{"'<'", LAngle},
		{"'>'", RAngle},
		{"','", Comma},
		{"';'", Semi},
		{"'='", Assign},
		{"'?'", Question},
		{"illegal character", Illegal},
		{"unknown", Type(999)},
	}

	for _, tt := range tests {
		got := tt.typ.String()
		if got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
