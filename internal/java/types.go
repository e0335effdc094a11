package java

import "strings"

// DeclKind discriminates the structural units the scanner extracts.
type DeclKind int

const (
	KindPackage DeclKind = iota
	KindImport
	KindType // class, interface or annotation type
	KindEnum
	KindEnumConstant
	KindField
	KindMethod
	KindConstructor
)

func (k DeclKind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindImport:
		return "import"
	case KindType:
		return "type"
	case KindEnum:
		return "enum"
	case KindEnumConstant:
		return "enum constant"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// Modifier is a bitset of Java modifiers attached to a declaration.
type Modifier uint16

const (
	ModPublic Modifier = 1 << iota
	ModPrivate
	ModProtected
	ModStatic
	ModFinal
	ModAbstract
	ModSynchronized
	ModNative
	ModTransient
	ModVolatile
	ModStrictfp
)

var modifierNames = map[string]Modifier{
	"public":       ModPublic,
	"private":      ModPrivate,
	"protected":    ModProtected,
	"static":       ModStatic,
	"final":        ModFinal,
	"abstract":     ModAbstract,
	"synchronized": ModSynchronized,
	"native":       ModNative,
	"transient":    ModTransient,
	"volatile":     ModVolatile,
	"strictfp":     ModStrictfp,
}

func (m Modifier) Has(flag Modifier) bool { return m&flag != 0 }

// Param is one method or constructor parameter.
type Param struct {
	Name string
	Type string
	// Reference is true for non-primitive parameter types.
	Reference bool
}

// CatchClause records a catch site inside a method body.
type CatchClause struct {
	// Types holds the caught exception type names; more than one for
	// a multi-catch.
	Types []string
	Line  int
	// Boundary is set when the site carries a boundary marker (an
	// enclosing @Boundary-style annotation or a marker comment).
	Boundary bool
}

// Comment is a source comment retained for suppression and marker lookup.
type Comment struct {
	Text    string
	Line    int
	EndLine int
}

// Declaration is one named construct extracted by the scanner. Parent is
// an index into SourceUnit.Decls (-1 for top level); it is a weak
// back-reference for scope lookup, not ownership.
type Declaration struct {
	Kind        DeclKind
	Name        string
	Modifiers   Modifier
	Line        int
	EndLine     int
	Depth       int
	Parent      int
	Javadoc     string
	Annotations []string

	// Type is the declared type for fields, the return type for
	// methods, and the introducing keyword ("class", "interface",
	// "enum") for type declarations.
	Type string

	// Method/constructor only.
	Params  []Param
	Body    []Token
	Catches []CatchClause
}

// HasAnnotation reports whether any attached annotation's simple name
// contains the given fragment (case-sensitive).
func (d *Declaration) HasAnnotation(fragment string) bool {
	for _, a := range d.Annotations {
		if strings.Contains(a, fragment) {
			return true
		}
	}
	return false
}

// SourceUnit is one scanned input file: a pure read model for rules,
// never mutated after construction.
type SourceUnit struct {
	Path     string
	Lines    []string
	Decls    []Declaration
	Comments []Comment
}

// Members returns the indices of the direct children of the declaration
// at index parent.
func (u *SourceUnit) Members(parent int) []int {
	var out []int
	for i := range u.Decls {
		if u.Decls[i].Parent == parent {
			out = append(out, i)
		}
	}
	return out
}

// EnclosingType walks Parent links from the declaration at index i and
// returns the index of the nearest enclosing type or enum, or -1.
func (u *SourceUnit) EnclosingType(i int) int {
	for p := u.Decls[i].Parent; p >= 0; p = u.Decls[p].Parent {
		if u.Decls[p].Kind == KindType || u.Decls[p].Kind == KindEnum {
			return p
		}
	}
	return -1
}
