package lexer

// TokenKind enumerates every lexical category the parser consumes.
type TokenKind int

const (
	EOF TokenKind = iota
	Ident
	IntLiteral
	CharLiteral
	StringLiteral

	// Keywords
	KwVoid
	KwBool
	KwChar
	KwShort
	KwInt
	KwLong
	KwFloat
	KwDouble
	KwSigned
	KwUnsigned
	KwStruct
	KwUnion
	KwEnum
	KwTypedef
	KwConst
	KwVolatile
	KwRestrict
	KwStatic
	KwExtern
	KwAuto
	KwRegister
	KwIf
	KwElse
	KwWhile
	KwFor
	KwDo
	KwSwitch
	KwCase
	KwDefault
	KwBreak
	KwContinue
	KwGoto
	KwReturn
	KwSizeof

	// Punctuation and operators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Colon
	Dot
	Arrow
	Question

	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign

	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Shl
	Shr
	Lt
	Gt
	Le
	Ge
	Eq
	Ne
	AndAnd
	OrOr
	Inc
	Dec
)

var keywords = map[string]TokenKind{
	"void": KwVoid, "_Bool": KwBool, "char": KwChar, "short": KwShort,
	"int": KwInt, "long": KwLong, "float": KwFloat, "double": KwDouble,
	"signed": KwSigned, "unsigned": KwUnsigned,
	"struct": KwStruct, "union": KwUnion, "enum": KwEnum, "typedef": KwTypedef,
	"const": KwConst, "volatile": KwVolatile, "restrict": KwRestrict,
	"static": KwStatic, "extern": KwExtern, "auto": KwAuto, "register": KwRegister,
	"if": KwIf, "else": KwElse, "while": KwWhile, "for": KwFor, "do": KwDo,
	"switch": KwSwitch, "case": KwCase, "default": KwDefault,
	"break": KwBreak, "continue": KwContinue, "goto": KwGoto,
	"return": KwReturn, "sizeof": KwSizeof,
}

// Span locates a token (or an AST node derived from one) in the
// original source text.
type Span struct {
	Line   int
	Column int
	Start  int
	End    int
}

// Token is one lexical unit.
type Token struct {
	Kind    TokenKind
	Literal string
	IntVal  int64
	Span    Span
}
