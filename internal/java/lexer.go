package java

import "fmt"

// two-character operators the structural scan cares about. Everything
// else lexes as a single punct byte.
var twoBytePuncts = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true,
	"&&": true, "||": true, "->": true, "::": true,
	"++": true, "--": true, "+=": true, "-=": true,
	"*=": true, "/=": true, "%=": true, "&=": true,
	"|=": true, "^=": true,
}

// Lex performs lexical analysis on Java source text and returns a
// sequence of tokens, comments included. It does not validate syntax
// beyond literal and comment termination.
func Lex(input string) ([]Token, error) {
	var tokens []Token

	line, col := 1, 1
	i := 0

	advance := func(n int) {
		for j := 0; j < n; j++ {
			if input[i+j] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		i += n
	}

	for i < len(input) {
		c := input[i]

		if isWhitespace(c) {
			advance(1)
			continue
		}

		// line comment
		if c == '/' && i+1 < len(input) && input[i+1] == '/' {
			start := i
			startLine, startCol := line, col
			for i < len(input) && input[i] != '\n' {
				advance(1)
			}
			tokens = append(tokens, Token{
				Type: TokenComment, Value: input[start:i],
				Line: startLine, Col: startCol, EndLine: startLine,
			})
			continue
		}

		// block comment (javadoc included)
		if c == '/' && i+1 < len(input) && input[i+1] == '*' {
			start := i
			startLine, startCol := line, col
			advance(2)
			closed := false
			for i < len(input) {
				if input[i] == '*' && i+1 < len(input) && input[i+1] == '/' {
					advance(2)
					closed = true
					break
				}
				advance(1)
			}
			if !closed {
				return nil, fmt.Errorf("line %d col %d: unterminated block comment", startLine, startCol)
			}
			tokens = append(tokens, Token{
				Type: TokenComment, Value: input[start:i],
				Line: startLine, Col: startCol, EndLine: line,
			})
			continue
		}

		// string literal
		if c == '"' {
			start := i
			startLine, startCol := line, col
			advance(1)
			closed := false
			for i < len(input) {
				if input[i] == '\\' && i+1 < len(input) {
					advance(2)
					continue
				}
				if input[i] == '"' {
					advance(1)
					closed = true
					break
				}
				if input[i] == '\n' {
					break
				}
				advance(1)
			}
			if !closed {
				return nil, fmt.Errorf("line %d col %d: unterminated string literal", startLine, startCol)
			}
			tokens = append(tokens, Token{
				Type: TokenString, Value: input[start:i],
				Line: startLine, Col: startCol, EndLine: startLine,
			})
			continue
		}

		// character literal
		if c == '\'' {
			start := i
			startLine, startCol := line, col
			advance(1)
			closed := false
			for i < len(input) {
				if input[i] == '\\' && i+1 < len(input) {
					advance(2)
					continue
				}
				if input[i] == '\'' {
					advance(1)
					closed = true
					break
				}
				if input[i] == '\n' {
					break
				}
				advance(1)
			}
			if !closed {
				return nil, fmt.Errorf("line %d col %d: unterminated character literal", startLine, startCol)
			}
			tokens = append(tokens, Token{
				Type: TokenChar, Value: input[start:i],
				Line: startLine, Col: startCol, EndLine: startLine,
			})
			continue
		}

		if isDigit(c) {
			start := i
			startLine, startCol := line, col
			for i < len(input) && isNumberChar(input[i]) {
				advance(1)
			}
			tokens = append(tokens, Token{
				Type: TokenNumber, Value: input[start:i],
				Line: startLine, Col: startCol, EndLine: startLine,
			})
			continue
		}

		if isIdentifierStart(c) {
			start := i
			startLine, startCol := line, col
			for i < len(input) && isIdentifierChar(input[i]) {
				advance(1)
			}
			value := input[start:i]
			typ := TokenIdent
			if keywords[value] {
				typ = TokenKeyword
			}
			tokens = append(tokens, Token{
				Type: typ, Value: value,
				Line: startLine, Col: startCol, EndLine: startLine,
			})
			continue
		}

		// punctuation, longest match first
		if i+1 < len(input) && twoBytePuncts[input[i:i+2]] {
			tokens = append(tokens, Token{
				Type: TokenPunct, Value: input[i : i+2],
				Line: line, Col: col, EndLine: line,
			})
			advance(2)
			continue
		}

		tokens = append(tokens, Token{
			Type: TokenPunct, Value: string(c),
			Line: line, Col: col, EndLine: line,
		})
		advance(1)
	}

	tokens = append(tokens, Token{Type: TokenEOF, Line: line, Col: col, EndLine: line})
	return tokens, nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberChar(c byte) bool {
	// good enough for positions; we never interpret numeric values
	return isDigit(c) || c == '.' || c == '_' ||
		(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
		c == 'x' || c == 'X' || c == 'l' || c == 'L'
}

func isIdentifierStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierChar(c byte) bool {
	return isIdentifierStart(c) || isDigit(c)
}
