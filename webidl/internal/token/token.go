package token

import "unicode"

type Type int

const (
	Ident Type = iota
	Number
	String
	LBrace
	RBrace
	LParen
	RParen
	LAngle
	RAngle
	LBracket
	RBracket
	Comma
	Semi
	Assign
	Question
	Illegal
)

func (t Type) String() string {
	switch t {
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case LBrace:
		return `'{'`
	case RBrace:
		return `'}'`
	case LParen:
		return `'('`
	case RParen:
		return `')'`
	case LAngle:
		return `'<'`
	case RAngle:
		return `'>'`
	case LBracket:
		return `'['`
	case RBracket:
		return `']'`
	case Comma:
		return `','`
	case Semi:
		return `';'`
	case Assign:
		return `'='`
	case Question:
		return `'?'`
	case Illegal:
		return "illegal character"
	}
	return "unknown"
}

type Token struct {
	Value string
	Type  Type
	Line  int
}

var punct = map[rune]Type{
	'{': LBrace,
	'}': RBrace,
	'(': LParen,
	')': RParen,
	'<': LAngle,
	'>': RAngle,
	'[': LBracket,
	']': RBracket,
	',': Comma,
	';': Semi,
	'=': Assign,
	'?': Question,
}

// Tokenize splits IDL source into tokens with line numbers. Unrecognized
// runes become Illegal tokens rather than being skipped, so the parser can
// report them.
func Tokenize(input string) []Token {
	var tokens []Token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		// Block comment
		if r == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			i += 2
			for i < len(runes) {
				if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
					i++
					break
				}
				if runes[i] == '\n' {
					line++
				}
				i++
			}
			continue
		}

		if typ, ok := punct[r]; ok {
			tokens = append(tokens, Token{string(r), typ, line})
			continue
		}

		// String literal
		if r == '"' {
			start := i + 1
			i++
			for i < len(runes) && runes[i] != '"' {
				if runes[i] == '\\' {
					i++
				}
				i++
			}
			tokens = append(tokens, Token{string(runes[start:min(i, len(runes))]), String, line})
			continue
		}

		// Number (including negative), used only in default values
		if unicode.IsDigit(r) || ((r == '-' || r == '+') && i+1 < len(runes) && unicode.IsDigit(runes[i+1])) {
			start := i
			if r == '-' || r == '+' {
				i++
			}
			for i < len(runes) {
				c := runes[i]
				if unicode.IsDigit(c) || c == '.' || c == 'x' || c == 'X' || c == '_' ||
					(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, line})
			i--
			continue
		}

		// Identifier
		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) {
				c := runes[i]
				if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
					i++
				} else {
					break
				}
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		tokens = append(tokens, Token{string(r), Illegal, line})
	}

	return tokens
}
