package java

import (
	"strings"

	tt "github.com/eigengo/quality/internal/types"
)

// Scan turns Java source text into a SourceUnit: a flat list of
// declarations annotated with nesting depth, attached javadoc and
// annotations, and (for methods) parameters, body tokens and catch
// clauses. It is a pure function of its input and fails with
// *types.MalformedSourceError when braces are unbalanced or a
// declaration cannot be delimited.
func Scan(path string, src []byte) (*SourceUnit, error) {
	text := string(src)
	all, err := Lex(text)
	if err != nil {
		return nil, &tt.MalformedSourceError{Path: path, Msg: err.Error()}
	}

	unit := &SourceUnit{
		Path:  path,
		Lines: strings.Split(text, "\n"),
	}

	// split comments out of the structural stream; they are kept on the
	// unit for javadoc attachment, suppression and boundary markers.
	toks := make([]Token, 0, len(all))
	braces := 0
	for _, tok := range all {
		if tok.Type == TokenComment {
			unit.Comments = append(unit.Comments, Comment{
				Text: tok.Value, Line: tok.Line, EndLine: tok.EndLine,
			})
			continue
		}
		if tok.Type == TokenPunct {
			switch tok.Value {
			case "{":
				braces++
			case "}":
				braces--
				if braces < 0 {
					return nil, &tt.MalformedSourceError{
						Path: path, Line: tok.Line, Msg: "unbalanced braces",
					}
				}
			}
		}
		toks = append(toks, tok)
	}
	if braces != 0 {
		return nil, &tt.MalformedSourceError{Path: path, Msg: "unbalanced braces"}
	}

	s := &scanner{path: path, toks: toks, unit: unit}
	if err := s.run(); err != nil {
		return nil, err
	}
	return unit, nil
}

type enclosing struct {
	decl     int
	inHeader bool // enum constant section, up to the first ';'
}

type scanner struct {
	path string
	toks []Token
	i    int
	unit *SourceUnit

	stack []enclosing

	// pending metadata for the next declaration
	annotations []string
	mods        Modifier
	anchor      int // line of the first pending annotation/modifier
}

func (s *scanner) cur() Token { return s.toks[s.i] }

func (s *scanner) malformed(line int, msg string) error {
	return &tt.MalformedSourceError{Path: s.path, Line: line, Msg: msg}
}

func (s *scanner) run() error {
	for {
		tok := s.cur()
		switch {
		case tok.Type == TokenEOF:
			if len(s.stack) != 0 {
				return s.malformed(tok.Line, "unterminated declaration")
			}
			return nil

		case tok.Type == TokenPunct && tok.Value == "@":
			if err := s.takeAnnotation(); err != nil {
				return err
			}

		case tok.Type == TokenKeyword && modifierNames[tok.Value] != 0:
			if err := s.addModifier(tok); err != nil {
				return err
			}
			s.i++

		case tok.Type == TokenKeyword && tok.Value == "default":
			// interface default method marker, not a modifier we track
			s.i++

		case tok.Type == TokenKeyword && tok.Value == "package":
			s.takeDottedDecl(KindPackage)

		case tok.Type == TokenKeyword && tok.Value == "import":
			s.takeDottedDecl(KindImport)

		case tok.Type == TokenKeyword &&
			(tok.Value == "class" || tok.Value == "interface" || tok.Value == "enum"):
			if err := s.takeTypeDecl(tok.Value); err != nil {
				return err
			}

		case tok.Type == TokenPunct && tok.Value == "{":
			// static or instance initializer block
			if err := s.skipBalanced("{", "}"); err != nil {
				return err
			}
			s.resetPending()

		case tok.Type == TokenPunct && tok.Value == "}":
			s.closeEnclosing(tok.Line)
			s.i++

		case tok.Type == TokenPunct && tok.Value == ";":
			s.resetPending()
			s.i++

		default:
			if len(s.stack) == 0 {
				return s.malformed(tok.Line, "cannot delimit declaration at top level")
			}
			if s.stack[len(s.stack)-1].inHeader {
				if err := s.takeEnumConstant(); err != nil {
					return err
				}
			} else if err := s.takeMember(); err != nil {
				return err
			}
		}
	}
}

func (s *scanner) addModifier(tok Token) error {
	m := modifierNames[tok.Value]
	access := ModPublic | ModPrivate | ModProtected
	if m&access != 0 && s.mods&access != 0 && !s.mods.Has(m) {
		return s.malformed(tok.Line, "conflicting access modifiers")
	}
	s.mods |= m
	if s.anchor == 0 {
		s.anchor = tok.Line
	}
	return nil
}

func (s *scanner) resetPending() {
	s.annotations = nil
	s.mods = 0
	s.anchor = 0
}

func (s *scanner) parent() int {
	if len(s.stack) == 0 {
		return -1
	}
	return s.stack[len(s.stack)-1].decl
}

// emit appends a declaration with the pending metadata attached and
// returns its index.
func (s *scanner) emit(d Declaration) int {
	d.Depth = len(s.stack)
	d.Parent = s.parent()
	d.Annotations = s.annotations
	d.Modifiers = s.mods
	start := d.Line
	if s.anchor != 0 {
		start = s.anchor
	}
	d.Javadoc = s.leadingComment(start)
	s.resetPending()
	s.unit.Decls = append(s.unit.Decls, d)
	return len(s.unit.Decls) - 1
}

// leadingComment returns the comment that ends on the line immediately
// above startLine, if any. A blank line in between detaches it.
func (s *scanner) leadingComment(startLine int) string {
	for i := len(s.unit.Comments) - 1; i >= 0; i-- {
		c := s.unit.Comments[i]
		if c.EndLine == startLine-1 {
			return c.Text
		}
		if c.EndLine < startLine-1 {
			break
		}
	}
	return ""
}

// takeAnnotation consumes @Name or @Name(...), arguments balanced across
// lines, and records it as pending. @interface is a type declaration.
func (s *scanner) takeAnnotation() error {
	at := s.cur()
	s.i++ // '@'
	if s.cur().Type == TokenKeyword && s.cur().Value == "interface" {
		return s.takeTypeDecl("interface")
	}
	if s.cur().Type != TokenIdent {
		return s.malformed(at.Line, "expected annotation name after '@'")
	}
	var b strings.Builder
	b.WriteByte('@')
	b.WriteString(s.cur().Value)
	s.i++
	for s.cur().Type == TokenPunct && s.cur().Value == "." {
		s.i++
		if s.cur().Type != TokenIdent {
			return s.malformed(at.Line, "expected identifier in annotation name")
		}
		b.WriteByte('.')
		b.WriteString(s.cur().Value)
		s.i++
	}
	if s.cur().Type == TokenPunct && s.cur().Value == "(" {
		start := s.i
		if err := s.skipBalanced("(", ")"); err != nil {
			return err
		}
		for _, tok := range s.toks[start:s.i] {
			b.WriteString(tok.Value)
		}
	}
	s.annotations = append(s.annotations, b.String())
	if s.anchor == 0 {
		s.anchor = at.Line
	}
	return nil
}

// takeDottedDecl consumes a package or import statement up to ';'.
func (s *scanner) takeDottedDecl(kind DeclKind) {
	line := s.cur().Line
	s.i++ // keyword
	var parts []string
	for s.cur().Type != TokenEOF {
		tok := s.cur()
		if tok.Type == TokenPunct && tok.Value == ";" {
			s.i++
			break
		}
		if tok.Type == TokenKeyword && tok.Value == "static" {
			s.i++
			continue
		}
		if tok.Type == TokenIdent || (tok.Type == TokenPunct && tok.Value == "*") {
			parts = append(parts, tok.Value)
		}
		s.i++
	}
	s.emit(Declaration{Kind: kind, Name: strings.Join(parts, "."), Line: line})
}

func (s *scanner) takeTypeDecl(kw string) error {
	line := s.cur().Line
	s.i++ // class/interface/enum
	if s.cur().Type != TokenIdent {
		return s.malformed(line, "expected "+kw+" name")
	}
	name := s.cur().Value
	s.i++

	kind := KindType
	if kw == "enum" {
		kind = KindEnum
	}
	// Type records the introducing keyword so rules can tell classes
	// from interfaces.
	idx := s.emit(Declaration{Kind: kind, Name: name, Line: line, Type: kw})

	// skip type parameters, extends and implements clauses
	for {
		tok := s.cur()
		if tok.Type == TokenEOF {
			return s.malformed(line, "unterminated "+kw+" declaration")
		}
		if tok.Type == TokenPunct && tok.Value == "{" {
			s.i++
			break
		}
		if tok.Type == TokenPunct && tok.Value == ";" {
			return s.malformed(tok.Line, "expected '{' in "+kw+" declaration")
		}
		s.i++
	}

	s.stack = append(s.stack, enclosing{decl: idx, inHeader: kind == KindEnum})
	return nil
}

func (s *scanner) closeEnclosing(line int) {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	s.unit.Decls[top.decl].EndLine = line
	s.stack = s.stack[:len(s.stack)-1]
	s.resetPending()
}

// takeEnumConstant consumes one constant of the enum header section,
// including optional constructor arguments and constant class body.
func (s *scanner) takeEnumConstant() error {
	tok := s.cur()
	if tok.Type != TokenIdent {
		return s.malformed(tok.Line, "cannot delimit enum constant")
	}
	s.emit(Declaration{Kind: KindEnumConstant, Name: tok.Value, Line: tok.Line, EndLine: tok.Line})
	s.i++

	if s.cur().Type == TokenPunct && s.cur().Value == "(" {
		if err := s.skipBalanced("(", ")"); err != nil {
			return err
		}
	}
	if s.cur().Type == TokenPunct && s.cur().Value == "{" {
		if err := s.skipBalanced("{", "}"); err != nil {
			return err
		}
	}
	switch {
	case s.cur().Type == TokenPunct && s.cur().Value == ",":
		s.i++
	case s.cur().Type == TokenPunct && s.cur().Value == ";":
		s.i++
		s.stack[len(s.stack)-1].inHeader = false
	}
	return nil
}

// takeMember consumes one field, method or constructor declaration of
// the current type body.
func (s *scanner) takeMember() error {
	start := s.i
	line := s.cur().Line

	// find what delimits this member: '(' means method/constructor,
	// '=' or ';' means field.
	stop := -1
	for j := s.i; ; j++ {
		tok := s.toks[j]
		if tok.Type == TokenEOF {
			return s.malformed(line, "cannot delimit declaration")
		}
		if tok.Type == TokenPunct {
			switch tok.Value {
			case "(", "=", ";", "{", "}":
				stop = j
			}
		}
		if stop >= 0 {
			break
		}
	}

	stopTok := s.toks[stop]
	switch stopTok.Value {
	case "(":
		return s.takeCallable(start, stop)
	case "=", ";":
		return s.takeField(start, stop)
	default:
		return s.malformed(stopTok.Line, "cannot delimit declaration")
	}
}

func (s *scanner) takeCallable(start, open int) error {
	nameTok := s.toks[open-1]
	if nameTok.Type != TokenIdent {
		return s.malformed(nameTok.Line, "cannot delimit method declaration")
	}

	retType := joinTokens(s.toks[start : open-1])
	kind := KindMethod
	parentIdx := s.parent()
	if retType == "" && parentIdx >= 0 && s.unit.Decls[parentIdx].Name == nameTok.Value {
		kind = KindConstructor
	}

	d := Declaration{Kind: kind, Name: nameTok.Value, Line: nameTok.Line, Type: retType}

	// parameters
	s.i = open
	paramStart := s.i + 1
	if err := s.skipBalanced("(", ")"); err != nil {
		return err
	}
	d.Params = parseParams(s.toks[paramStart : s.i-1])

	// throws clause, then body or ';'
	for {
		tok := s.cur()
		if tok.Type == TokenEOF {
			return s.malformed(nameTok.Line, "unterminated method declaration")
		}
		if tok.Type == TokenPunct && tok.Value == ";" {
			d.EndLine = tok.Line
			s.i++
			break
		}
		if tok.Type == TokenPunct && tok.Value == "{" {
			bodyStart := s.i + 1
			if err := s.skipBalanced("{", "}"); err != nil {
				return err
			}
			d.Body = s.toks[bodyStart : s.i-1]
			d.EndLine = s.toks[s.i-1].Line
			break
		}
		s.i++
	}

	boundary := hasBoundaryAnnotation(s.annotations)
	d.Catches = s.parseCatches(d.Body, boundary)
	s.emit(d)
	return nil
}

func (s *scanner) takeField(start, stop int) error {
	// the first declarator name is the first identifier at type level
	// followed by '=', ',' or ';'. Depth tracking keeps generic type
	// arguments (which contain commas) out of consideration.
	nameIdx := -1
	depth := 0
	for j := start; j < stop; j++ {
		tok := s.toks[j]
		if tok.Type == TokenPunct {
			switch tok.Value {
			case "<", "(", "[":
				depth++
			case ">", ")", "]":
				depth--
			}
			continue
		}
		if tok.Type != TokenIdent || depth != 0 {
			continue
		}
		next := s.toks[j+1]
		if next.Type == TokenPunct && (next.Value == "=" || next.Value == "," || next.Value == ";") {
			nameIdx = j
			break
		}
	}
	if nameIdx < 0 {
		// array suffix between name and delimiter; take the identifier
		// closest to the stop token
		for j := stop - 1; j > start; j-- {
			if s.toks[j].Type == TokenIdent {
				nameIdx = j
				break
			}
		}
	}
	if nameIdx <= start {
		return s.malformed(s.toks[start].Line, "cannot delimit field declaration")
	}

	fieldType := joinTokens(s.toks[start:nameIdx])
	pendingAnnotations := s.annotations
	pendingMods := s.mods
	anchor := s.anchor

	emitField := func(name string, line int) {
		s.annotations = pendingAnnotations
		s.mods = pendingMods
		s.anchor = anchor
		s.emit(Declaration{Kind: KindField, Name: name, Line: line, Type: fieldType})
	}

	emitField(s.toks[nameIdx].Value, s.toks[nameIdx].Line)

	// walk declarators: skip initializers, pick up names after commas
	s.i = nameIdx + 1
	for {
		tok := s.cur()
		switch {
		case tok.Type == TokenEOF:
			return s.malformed(tok.Line, "unterminated field declaration")
		case tok.Type == TokenPunct && tok.Value == ";":
			last := len(s.unit.Decls) - 1
			for j := last; j >= 0 && s.unit.Decls[j].Kind == KindField && s.unit.Decls[j].EndLine == 0; j-- {
				s.unit.Decls[j].EndLine = tok.Line
			}
			s.i++
			s.resetPending()
			return nil
		case tok.Type == TokenPunct && tok.Value == ",":
			s.i++
			for s.cur().Type == TokenPunct && (s.cur().Value == "[" || s.cur().Value == "]") {
				s.i++
			}
			if s.cur().Type == TokenIdent {
				emitField(s.cur().Value, s.cur().Line)
				s.i++
			}
		case tok.Type == TokenPunct && tok.Value == "=":
			s.i++
			if err := s.skipInitializer(); err != nil {
				return err
			}
		default:
			s.i++
		}
	}
}

// skipInitializer advances past an initializer expression, stopping at a
// top-level ',' or ';' without consuming it.
func (s *scanner) skipInitializer() error {
	depth := 0
	for {
		tok := s.cur()
		if tok.Type == TokenEOF {
			return s.malformed(tok.Line, "unterminated initializer")
		}
		if tok.Type == TokenPunct {
			switch tok.Value {
			case "(", "{", "[":
				depth++
			case ")", "}", "]":
				depth--
			case ",", ";":
				if depth == 0 {
					return nil
				}
			}
		}
		s.i++
	}
}

// skipBalanced consumes from the current opening token through its
// matching closer.
func (s *scanner) skipBalanced(open, close string) error {
	start := s.cur()
	depth := 0
	for {
		tok := s.cur()
		if tok.Type == TokenEOF {
			return s.malformed(start.Line, "unbalanced '"+open+"'")
		}
		if tok.Type == TokenPunct {
			switch tok.Value {
			case open:
				depth++
			case close:
				depth--
			}
		}
		s.i++
		if depth == 0 {
			return nil
		}
	}
}

// parseCatches extracts catch clauses from a method body token slice.
func (s *scanner) parseCatches(body []Token, methodBoundary bool) []CatchClause {
	var clauses []CatchClause
	for j := 0; j < len(body); j++ {
		if body[j].Type != TokenKeyword || body[j].Value != "catch" {
			continue
		}
		k := j + 1
		if k >= len(body) || body[k].Value != "(" {
			continue
		}
		depth := 0
		var inner []Token
		for ; k < len(body); k++ {
			if body[k].Type == TokenPunct {
				if body[k].Value == "(" {
					depth++
					if depth == 1 {
						continue
					}
				}
				if body[k].Value == ")" {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			inner = append(inner, body[k])
		}
		clause := CatchClause{
			Types:    catchTypes(inner),
			Line:     body[j].Line,
			Boundary: methodBoundary || s.commentBoundary(body[j].Line),
		}
		clauses = append(clauses, clause)
		j = k
	}
	return clauses
}

// catchTypes extracts the exception type names of a catch parameter,
// handling multi-catch and dropping the variable name.
func catchTypes(toks []Token) []string {
	var names []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			names = append(names, cur.String())
			cur.Reset()
		}
	}
	for j := 0; j < len(toks); j++ {
		tok := toks[j]
		switch {
		case tok.Type == TokenIdent:
			if cur.Len() > 0 && j > 0 && toks[j-1].Value != "." {
				flush()
			}
			cur.WriteString(tok.Value)
		case tok.Type == TokenPunct && tok.Value == ".":
			cur.WriteByte('.')
		case tok.Type == TokenPunct && tok.Value == "|":
			flush()
		case tok.Type == TokenKeyword && tok.Value == "final":
			// ignore
		case tok.Type == TokenPunct && tok.Value == "@":
			// skip annotation name
			if j+1 < len(toks) {
				j++
			}
		}
	}
	flush()
	if len(names) > 1 {
		// last qualified name is the variable
		names = names[:len(names)-1]
	}
	return names
}

// commentBoundary reports whether a marker comment on the catch line or
// the line above designates the site as an error boundary.
func (s *scanner) commentBoundary(line int) bool {
	for _, c := range s.unit.Comments {
		if (c.EndLine == line || c.EndLine == line-1) && isBoundaryMarker(c.Text) {
			return true
		}
	}
	return false
}

// isBoundaryMarker matches comments whose first word is "boundary"
// (case-insensitive, optionally followed by punctuation and prose). A
// comment merely mentioning the word does not count.
func isBoundaryMarker(text string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	first := strings.TrimRight(strings.ToLower(fields[0]), ":.,;")
	return first == "boundary"
}

// hasBoundaryAnnotation reports whether a pending annotation designates
// a top-level error boundary.
func hasBoundaryAnnotation(annotations []string) bool {
	for _, a := range annotations {
		if strings.Contains(a, "Boundary") {
			return true
		}
	}
	return false
}

// parseParams splits a parameter list's tokens on top-level commas and
// extracts (type, name) pairs.
func parseParams(toks []Token) []Param {
	var params []Param
	var segment []Token
	depth := 0
	flush := func() {
		if p, ok := paramFromTokens(segment); ok {
			params = append(params, p)
		}
		segment = nil
	}
	for _, tok := range toks {
		if tok.Type == TokenPunct {
			switch tok.Value {
			case "<", "(", "[":
				depth++
			case ">", ")", "]":
				depth--
			case ",":
				if depth == 0 {
					flush()
					continue
				}
			}
		}
		segment = append(segment, tok)
	}
	flush()
	return params
}

func paramFromTokens(toks []Token) (Param, bool) {
	// strip leading final and annotations
	for len(toks) > 0 {
		if toks[0].Type == TokenKeyword && toks[0].Value == "final" {
			toks = toks[1:]
			continue
		}
		if toks[0].Type == TokenPunct && toks[0].Value == "@" && len(toks) > 1 {
			toks = toks[2:]
			continue
		}
		break
	}
	nameIdx := -1
	for j := len(toks) - 1; j >= 0; j-- {
		if toks[j].Type == TokenIdent {
			nameIdx = j
			break
		}
	}
	if nameIdx <= 0 {
		return Param{}, false
	}
	typ := joinTokens(toks[:nameIdx])
	return Param{
		Name:      toks[nameIdx].Value,
		Type:      typ,
		Reference: isReferenceType(typ),
	}, true
}

func isReferenceType(typ string) bool {
	if typ == "" || typ == "void" {
		return false
	}
	if strings.Contains(typ, "[") || strings.Contains(typ, "...") {
		return true
	}
	base := typ
	if idx := strings.IndexByte(base, '<'); idx >= 0 {
		base = base[:idx]
	}
	return !IsPrimitive(base)
}

func joinTokens(toks []Token) string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Value)
	}
	return b.String()
}
