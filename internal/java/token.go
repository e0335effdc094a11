package java

// TokenType defines the type of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenKeyword
	TokenNumber
	TokenString
	TokenChar
	TokenPunct
	TokenComment
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdent:
		return "Ident"
	case TokenKeyword:
		return "Keyword"
	case TokenNumber:
		return "Number"
	case TokenString:
		return "String"
	case TokenChar:
		return "Char"
	case TokenPunct:
		return "Punct"
	case TokenComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token with its source position. EndLine
// differs from Line only for block comments.
type Token struct {
	Type    TokenType
	Value   string
	Line    int
	Col     int
	EndLine int
}

var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true,
	"long": true, "native": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true,
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "double": true,
	"float": true, "int": true, "long": true, "short": true,
}

// IsPrimitive reports whether a type name denotes a Java primitive.
// Array and generic suffixes are ignored by callers before asking.
func IsPrimitive(typeName string) bool {
	return primitives[typeName]
}
