package lexer

import "fmt"

// TokenType classifies a lexeme.
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota

	// Reserved keywords
	BREAK
	CASE
	CATCH
	CLASS
	CONST
	CONTINUE
	DEBUGGER
	DEFAULT
	DELETE
	DO
	ELSE
	EXPORT
	EXTENDS
	FINALLY
	FOR
	FUNCTION
	IF
	IMPORT
	IN
	INSTANCEOF
	LET
	NEW
	RETURN
	SUPER
	SWITCH
	THIS
	THROW
	TRY
	TYPEOF
	VAR
	VOID
	WHILE
	WITH
	YIELD

	// Literal-value keywords
	TRUE_LITERAL
	FALSE_LITERAL
	NULL_LITERAL
	UNDEFINED_LITERAL

	// Literals
	STRING_LITERAL
	NUMERIC_BINARY  // 0b1010
	NUMERIC_OCTAL   // 0o17, 017
	NUMERIC_DECIMAL // 123, 1.5, 1e3, 089
	NUMERIC_HEX     // 0xFF
	IDENTIFIER

	// Brackets and separators
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	LBRACK    // [
	RBRACK    // ]
	SEMICOLON // ;
	COMMA     // ,
	COLON     // :
	PERIOD    // .
	ELLIPSIS  // ...
	QUESTION  // ?
	OPTIONAL  // ?.
	ARROW     // =>

	// Comparison
	LT        // <
	GT        // >
	LTE       // <=
	GTE       // >=
	EQ        // ==
	NE        // !=
	EQ_STRICT // ===
	NE_STRICT // !==

	// Arithmetic
	ADD // +
	SUB // -
	MUL // *
	DIV // /
	MOD // %
	EXP // **
	INC // ++
	DEC // --

	// Bitwise
	SHL     // <<
	SAR     // >>
	SHR     // >>>
	BIT_AND // &
	BIT_OR  // |
	BIT_XOR // ^
	BIT_NOT // ~

	// Logical
	NOT      // !
	AND      // &&
	OR       // ||
	COALESCE // ??

	// Assignment
	ASSIGN          // =
	ADD_ASSIGN      // +=
	SUB_ASSIGN      // -=
	MUL_ASSIGN      // *=
	DIV_ASSIGN      // /=
	MOD_ASSIGN      // %=
	EXP_ASSIGN      // **=
	SHL_ASSIGN      // <<=
	SAR_ASSIGN      // >>=
	SHR_ASSIGN      // >>>=
	BIT_AND_ASSIGN  // &=
	BIT_OR_ASSIGN   // |=
	BIT_XOR_ASSIGN  // ^=
	AND_ASSIGN      // &&=
	OR_ASSIGN       // ||=
	COALESCE_ASSIGN // ??=

	tokenTypeCount
)

var tokenNames = [tokenTypeCount]string{
	EOF:               "EOF",
	BREAK:             "BREAK",
	CASE:              "CASE",
	CATCH:             "CATCH",
	CLASS:             "CLASS",
	CONST:             "CONST",
	CONTINUE:          "CONTINUE",
	DEBUGGER:          "DEBUGGER",
	DEFAULT:           "DEFAULT",
	DELETE:            "DELETE",
	DO:                "DO",
	ELSE:              "ELSE",
	EXPORT:            "EXPORT",
	EXTENDS:           "EXTENDS",
	FINALLY:           "FINALLY",
	FOR:               "FOR",
	FUNCTION:          "FUNCTION",
	IF:                "IF",
	IMPORT:            "IMPORT",
	IN:                "IN",
	INSTANCEOF:        "INSTANCEOF",
	LET:               "LET",
	NEW:               "NEW",
	RETURN:            "RETURN",
	SUPER:             "SUPER",
	SWITCH:            "SWITCH",
	THIS:              "THIS",
	THROW:             "THROW",
	TRY:               "TRY",
	TYPEOF:            "TYPEOF",
	VAR:               "VAR",
	VOID:              "VOID",
	WHILE:             "WHILE",
	WITH:              "WITH",
	YIELD:             "YIELD",
	TRUE_LITERAL:      "TRUE_LITERAL",
	FALSE_LITERAL:     "FALSE_LITERAL",
	NULL_LITERAL:      "NULL_LITERAL",
	UNDEFINED_LITERAL: "UNDEFINED_LITERAL",
	STRING_LITERAL:    "STRING_LITERAL",
	NUMERIC_BINARY:    "NUMERIC_BINARY",
	NUMERIC_OCTAL:     "NUMERIC_OCTAL",
	NUMERIC_DECIMAL:   "NUMERIC_DECIMAL",
	NUMERIC_HEX:       "NUMERIC_HEX",
	IDENTIFIER:        "IDENTIFIER",
	LBRACE:            "LBRACE",
	RBRACE:            "RBRACE",
	LPAREN:            "LPAREN",
	RPAREN:            "RPAREN",
	LBRACK:            "LBRACK",
	RBRACK:            "RBRACK",
	SEMICOLON:         "SEMICOLON",
	COMMA:             "COMMA",
	COLON:             "COLON",
	PERIOD:            "PERIOD",
	ELLIPSIS:          "ELLIPSIS",
	QUESTION:          "QUESTION",
	OPTIONAL:          "OPTIONAL",
	ARROW:             "ARROW",
	LT:                "LT",
	GT:                "GT",
	LTE:               "LTE",
	GTE:               "GTE",
	EQ:                "EQ",
	NE:                "NE",
	EQ_STRICT:         "EQ_STRICT",
	NE_STRICT:         "NE_STRICT",
	ADD:               "ADD",
	SUB:               "SUB",
	MUL:               "MUL",
	DIV:               "DIV",
	MOD:               "MOD",
	EXP:               "EXP",
	INC:               "INC",
	DEC:               "DEC",
	SHL:               "SHL",
	SAR:               "SAR",
	SHR:               "SHR",
	BIT_AND:           "BIT_AND",
	BIT_OR:            "BIT_OR",
	BIT_XOR:           "BIT_XOR",
	BIT_NOT:           "BIT_NOT",
	NOT:               "NOT",
	AND:               "AND",
	OR:                "OR",
	COALESCE:          "COALESCE",
	ASSIGN:            "ASSIGN",
	ADD_ASSIGN:        "ADD_ASSIGN",
	SUB_ASSIGN:        "SUB_ASSIGN",
	MUL_ASSIGN:        "MUL_ASSIGN",
	DIV_ASSIGN:        "DIV_ASSIGN",
	MOD_ASSIGN:        "MOD_ASSIGN",
	EXP_ASSIGN:        "EXP_ASSIGN",
	SHL_ASSIGN:        "SHL_ASSIGN",
	SAR_ASSIGN:        "SAR_ASSIGN",
	SHR_ASSIGN:        "SHR_ASSIGN",
	BIT_AND_ASSIGN:    "BIT_AND_ASSIGN",
	BIT_OR_ASSIGN:     "BIT_OR_ASSIGN",
	BIT_XOR_ASSIGN:    "BIT_XOR_ASSIGN",
	AND_ASSIGN:        "AND_ASSIGN",
	OR_ASSIGN:         "OR_ASSIGN",
	COALESCE_ASSIGN:   "COALESCE_ASSIGN",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if t >= 0 && t < tokenTypeCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// LookupTokenType returns the type whose String() is name.
func LookupTokenType(name string) (TokenType, bool) {
	for t := EOF; t < tokenTypeCount; t++ {
		if tokenNames[t] == name {
			return t, true
		}
	}
	return 0, false
}

// IsKeyword reports whether t is a reserved word or a literal-value keyword.
func (t TokenType) IsKeyword() bool {
	return t >= BREAK && t <= UNDEFINED_LITERAL
}

// IsNumeric reports whether t is one of the four numeric literal categories.
func (t TokenType) IsNumeric() bool {
	return t >= NUMERIC_BINARY && t <= NUMERIC_HEX
}

// IsPunctuator reports whether t is a punctuator.
func (t TokenType) IsPunctuator() bool {
	return t >= LBRACE && t < tokenTypeCount
}

// Radix returns the numeric base of a numeric literal category, or 0.
func (t TokenType) Radix() int {
	switch t {
	case NUMERIC_BINARY:
		return 2
	case NUMERIC_OCTAL:
		return 8
	case NUMERIC_DECIMAL:
		return 10
	case NUMERIC_HEX:
		return 16
	default:
		return 0
	}
}

// Keywords maps identifier text to reserved-word and literal-keyword types.
var Keywords = map[string]TokenType{
	"break":      BREAK,
	"case":       CASE,
	"catch":      CATCH,
	"class":      CLASS,
	"const":      CONST,
	"continue":   CONTINUE,
	"debugger":   DEBUGGER,
	"default":    DEFAULT,
	"delete":     DELETE,
	"do":         DO,
	"else":       ELSE,
	"export":     EXPORT,
	"extends":    EXTENDS,
	"finally":    FINALLY,
	"for":        FOR,
	"function":   FUNCTION,
	"if":         IF,
	"import":     IMPORT,
	"in":         IN,
	"instanceof": INSTANCEOF,
	"let":        LET,
	"new":        NEW,
	"return":     RETURN,
	"super":      SUPER,
	"switch":     SWITCH,
	"this":       THIS,
	"throw":      THROW,
	"try":        TRY,
	"typeof":     TYPEOF,
	"var":        VAR,
	"void":       VOID,
	"while":      WHILE,
	"with":       WITH,
	"yield":      YIELD,
	"true":       TRUE_LITERAL,
	"false":      FALSE_LITERAL,
	"null":       NULL_LITERAL,
	"undefined":  UNDEFINED_LITERAL,
}

// LookupIdentifier returns the keyword type for text, or IDENTIFIER.
func LookupIdentifier(text string) TokenType {
	if t, ok := Keywords[text]; ok {
		return t
	}
	return IDENTIFIER
}

// SingleCharTokens maps the punctuators that never start a longer punctuator.
var SingleCharTokens = map[rune]TokenType{
	'{': LBRACE,
	'}': RBRACE,
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACK,
	']': RBRACK,
	';': SEMICOLON,
	',': COMMA,
	':': COLON,
	'~': BIT_NOT,
}

// Punctuators maps every multi-character-capable punctuator to its type.
// The scanner tries the longest candidate first.
var Punctuators = map[string]TokenType{
	".":    PERIOD,
	"...":  ELLIPSIS,
	"?":    QUESTION,
	"?.":   OPTIONAL,
	"??":   COALESCE,
	"??=":  COALESCE_ASSIGN,
	"=":    ASSIGN,
	"==":   EQ,
	"===":  EQ_STRICT,
	"=>":   ARROW,
	"!":    NOT,
	"!=":   NE,
	"!==":  NE_STRICT,
	"<":    LT,
	"<=":   LTE,
	"<<":   SHL,
	"<<=":  SHL_ASSIGN,
	">":    GT,
	">=":   GTE,
	">>":   SAR,
	">>=":  SAR_ASSIGN,
	">>>":  SHR,
	">>>=": SHR_ASSIGN,
	"+":    ADD,
	"++":   INC,
	"+=":   ADD_ASSIGN,
	"-":    SUB,
	"--":   DEC,
	"-=":   SUB_ASSIGN,
	"*":    MUL,
	"*=":   MUL_ASSIGN,
	"**":   EXP,
	"**=":  EXP_ASSIGN,
	"/":    DIV,
	"/=":   DIV_ASSIGN,
	"%":    MOD,
	"%=":   MOD_ASSIGN,
	"&":    BIT_AND,
	"&=":   BIT_AND_ASSIGN,
	"&&":   AND,
	"&&=":  AND_ASSIGN,
	"|":    BIT_OR,
	"|=":   BIT_OR_ASSIGN,
	"||":   OR,
	"||=":  OR_ASSIGN,
	"^":    BIT_XOR,
	"^=":   BIT_XOR_ASSIGN,
}

// maxPunctuatorLen is the length of the longest entry in Punctuators.
const maxPunctuatorLen = 4

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column, counted in Unicode scalar values
	Offset int // 0-based byte offset
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token.
//
// Text holds the cooked lexeme: string literals without their quotes and with
// escapes decoded, identifiers with unicode escapes decoded, numbers and
// punctuators exactly as written. Value is meaningful only when HasValue is
// set, which happens for numeric literals alone.
type Token struct {
	Type     TokenType
	Text     string
	Value    float64
	HasValue bool
	Position Position
}

// NumericValue returns the literal's value for numeric tokens.
func (t Token) NumericValue() (float64, bool) {
	return t.Value, t.HasValue
}

// String returns a compact debugging form such as IDENTIFIER("abc")@1:5.
func (t Token) String() string {
	if t.Type == EOF {
		return fmt.Sprintf("EOF@%s", t.Position)
	}
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Text, t.Position)
}
