package buffer

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"
)

type Syntax uint8

const (
	Default Syntax = iota
	Column // Not necessarily a Syntax; useful for Colorscheming editor column
	Keyword
	String
	Special
	Type
	Number
	Builtin
	Comment
	DocComment
)

type Language struct {
	Name      string
	Filetypes []string // .go, .c, etc.
	Lexer     chroma.Lexer
}

// PlainText is used when no language can be detected. It highlights nothing.
var PlainText = &Language{Name: "Text", Lexer: lexers.Fallback}

// DetectLanguage picks a Language for a file from its name, falling back to
// its contents. It never returns nil.
func DetectLanguage(filename string, contents []byte) *Language {
	var lexer chroma.Lexer
	if name := enry.GetLanguage(filepath.Base(filename), contents); name != "" {
		lexer = lexers.Get(name)
	}
	if lexer == nil && filename != "" {
		lexer = lexers.Match(filepath.Base(filename))
	}
	if lexer == nil && len(contents) > 0 {
		lexer = lexers.Analyse(string(contents))
	}
	if lexer == nil {
		return PlainText
	}

	config := lexer.Config()
	return &Language{
		Name:      config.Name,
		Filetypes: config.Filenames,
		Lexer:     chroma.Coalesce(lexer),
	}
}

// syntaxOf maps a chroma token type onto the Syntax classes a Colorscheme
// knows about.
func syntaxOf(t chroma.TokenType) Syntax {
	switch {
	case t == chroma.KeywordType:
		return Type
	case t == chroma.KeywordConstant:
		return Special
	case t.InCategory(chroma.Keyword):
		return Keyword
	case t == chroma.CommentSpecial || t == chroma.CommentPreproc:
		return DocComment
	case t.InCategory(chroma.Comment):
		return Comment
	case t.InSubCategory(chroma.LiteralString):
		return String
	case t.InSubCategory(chroma.LiteralNumber):
		return Number
	case t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return Builtin
	}
	return Default
}
