package token

import "fmt"

// Kind represents the lexical category of a token.
type Kind uint16

const (
	// Invalid indicates an erroneous or unrecognized token.
	Invalid Kind = iota
	// Void is the neutral kind of a cleared token (tombstone).
	Void
	// Verbatim is raw text whose category was not inferred.
	Verbatim

	// InlineHTML is text outside of PHP tags.
	InlineHTML
	// OpenTag represents '<?php' or '<?' including one trailing newline or space.
	OpenTag
	// OpenTagWithEcho represents '<?='.
	OpenTagWithEcho
	// CloseTag represents '?>' including one trailing newline.
	CloseTag

	// Whitespace is a run of spaces, tabs and line breaks.
	Whitespace
	// Comment is a line or block comment.
	Comment
	// DocComment is a '/** ... */' comment.
	DocComment

	// Variable represents '$name'.
	Variable
	// Ident represents a bare identifier (T_STRING).
	Ident
	// NsSeparator represents '\'.
	NsSeparator
	// LNumber is an integer literal.
	LNumber
	// DNumber is a floating point literal.
	DNumber
	// ConstantString is a quoted string without interpolation.
	ConstantString
	// EncapsedText is literal text inside an interpolated string or heredoc.
	EncapsedText
	// StringVarname is the name inside '${name}'.
	StringVarname
	// NumString is a numeric offset inside an interpolated '$a[0]'.
	NumString
	// StartHeredoc represents '<<<ID' with its trailing newline.
	StartHeredoc
	// EndHeredoc represents the closing heredoc identifier.
	EndHeredoc
	// CurlyOpen represents '{' opening '{$expr}' interpolation.
	CurlyOpen
	// DollarOpenCurlyBraces represents '${' interpolation.
	DollarOpenCurlyBraces
	// MagicConst represents '__CLASS__', '__LINE__' and friends.
	MagicConst
	// AttributeStart represents '#['.
	AttributeStart

	// IntCast represents '(int)'.
	IntCast
	// DoubleCast represents '(float)'.
	DoubleCast
	// StringCast represents '(string)'.
	StringCast
	// ArrayCast represents '(array)'.
	ArrayCast
	// ObjectCast represents '(object)'.
	ObjectCast
	// BoolCast represents '(bool)'.
	BoolCast
	// UnsetCast represents '(unset)'.
	UnsetCast

	kwBegin
	KwAbstract
	KwArray
	KwAs
	KwBreak
	KwCallable
	KwCase
	KwCatch
	KwClass
	KwClone
	KwConst
	KwContinue
	KwDeclare
	KwDefault
	KwDo
	KwEcho
	KwElse
	KwElseif
	KwEmpty
	KwEnddeclare
	KwEndfor
	KwEndforeach
	KwEndif
	KwEndswitch
	KwEndwhile
	KwEnum
	KwEval
	KwExit
	KwExtends
	KwFinal
	KwFinally
	KwFn
	KwFor
	KwForeach
	KwFunction
	KwGlobal
	KwGoto
	KwIf
	KwImplements
	KwInclude
	KwIncludeOnce
	KwInstanceof
	KwInsteadof
	KwInterface
	KwIsset
	KwList
	KwLogicalAnd
	KwLogicalOr
	KwLogicalXor
	KwMatch
	KwNamespace
	KwNew
	KwPrint
	KwPrivate
	KwProtected
	KwPublic
	KwReadonly
	KwRequire
	KwRequireOnce
	KwReturn
	KwStatic
	KwSwitch
	KwThrow
	KwTrait
	KwTry
	KwUnset
	KwUse
	KwVar
	KwWhile
	KwYield
	kwEnd

	// Multi-character operators.
	DoubleArrow     // =>
	ObjectOperator  // ->
	NullsafeObjOp   // ?->
	DoubleColon     // ::
	Ellipsis        // ...
	IsIdentical     // ===
	IsNotIdentical  // !==
	IsEqual         // ==
	IsNotEqual      // != or <>
	Spaceship       // <=>
	IsSmallerOrEq   // <=
	IsGreaterOrEq   // >=
	BooleanAnd      // &&
	BooleanOr       // ||
	Inc             // ++
	Dec             // --
	PlusEqual       // +=
	MinusEqual      // -=
	MulEqual        // *=
	DivEqual        // /=
	ConcatEqual     // .=
	ModEqual        // %=
	AndEqual        // &=
	OrEqual         // |=
	XorEqual        // ^=
	SlEqual         // <<=
	SrEqual         // >>=
	PowEqual        // **=
	CoalesceEqual   // ??=
	Sl              // <<
	Sr              // >>
	Coalesce        // ??
	Pow             // **

	// Single-character tokens.
	Semicolon   // ;
	Comma       // ,
	LParen      // (
	RParen      // )
	LBracket    // [
	RBracket    // ]
	LBrace      // {
	RBrace      // }
	Assign      // =
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Percent     // %
	Dot         // .
	Bang        // !
	Tilde       // ~
	Caret       // ^
	Amp         // &
	Pipe        // |
	Lt          // <
	Gt          // >
	Question    // ?
	Colon       // :
	At          // @
	Dollar      // $
	DoubleQuote // "
	Backtick    // `

	// ArrayOpen is the pseudo kind of a '[' retagged as a short-array opener.
	ArrayOpen
	// ArrayClose is the pseudo kind of the matching ']'.
	ArrayClose

	kindCount
)

var kindNames = [...]string{
	Invalid:               "Invalid",
	Void:                  "Void",
	Verbatim:              "Verbatim",
	InlineHTML:            "InlineHTML",
	OpenTag:               "OpenTag",
	OpenTagWithEcho:       "OpenTagWithEcho",
	CloseTag:              "CloseTag",
	Whitespace:            "Whitespace",
	Comment:               "Comment",
	DocComment:            "DocComment",
	Variable:              "Variable",
	Ident:                 "Ident",
	NsSeparator:           "NsSeparator",
	LNumber:               "LNumber",
	DNumber:               "DNumber",
	ConstantString:        "ConstantString",
	EncapsedText:          "EncapsedText",
	StringVarname:         "StringVarname",
	NumString:             "NumString",
	StartHeredoc:          "StartHeredoc",
	EndHeredoc:            "EndHeredoc",
	CurlyOpen:             "CurlyOpen",
	DollarOpenCurlyBraces: "DollarOpenCurlyBraces",
	MagicConst:            "MagicConst",
	AttributeStart:        "AttributeStart",
	IntCast:               "IntCast",
	DoubleCast:            "DoubleCast",
	StringCast:            "StringCast",
	ArrayCast:             "ArrayCast",
	ObjectCast:            "ObjectCast",
	BoolCast:              "BoolCast",
	UnsetCast:             "UnsetCast",
	kwBegin:               "",
	KwAbstract:            "KwAbstract",
	KwArray:               "KwArray",
	KwAs:                  "KwAs",
	KwBreak:               "KwBreak",
	KwCallable:            "KwCallable",
	KwCase:                "KwCase",
	KwCatch:               "KwCatch",
	KwClass:               "KwClass",
	KwClone:               "KwClone",
	KwConst:               "KwConst",
	KwContinue:            "KwContinue",
	KwDeclare:             "KwDeclare",
	KwDefault:             "KwDefault",
	KwDo:                  "KwDo",
	KwEcho:                "KwEcho",
	KwElse:                "KwElse",
	KwElseif:              "KwElseif",
	KwEmpty:               "KwEmpty",
	KwEnddeclare:          "KwEnddeclare",
	KwEndfor:              "KwEndfor",
	KwEndforeach:          "KwEndforeach",
	KwEndif:               "KwEndif",
	KwEndswitch:           "KwEndswitch",
	KwEndwhile:            "KwEndwhile",
	KwEnum:                "KwEnum",
	KwEval:                "KwEval",
	KwExit:                "KwExit",
	KwExtends:             "KwExtends",
	KwFinal:               "KwFinal",
	KwFinally:             "KwFinally",
	KwFn:                  "KwFn",
	KwFor:                 "KwFor",
	KwForeach:             "KwForeach",
	KwFunction:            "KwFunction",
	KwGlobal:              "KwGlobal",
	KwGoto:                "KwGoto",
	KwIf:                  "KwIf",
	KwImplements:          "KwImplements",
	KwInclude:             "KwInclude",
	KwIncludeOnce:         "KwIncludeOnce",
	KwInstanceof:          "KwInstanceof",
	KwInsteadof:           "KwInsteadof",
	KwInterface:           "KwInterface",
	KwIsset:               "KwIsset",
	KwList:                "KwList",
	KwLogicalAnd:          "KwLogicalAnd",
	KwLogicalOr:           "KwLogicalOr",
	KwLogicalXor:          "KwLogicalXor",
	KwMatch:               "KwMatch",
	KwNamespace:           "KwNamespace",
	KwNew:                 "KwNew",
	KwPrint:               "KwPrint",
	KwPrivate:             "KwPrivate",
	KwProtected:           "KwProtected",
	KwPublic:              "KwPublic",
	KwReadonly:            "KwReadonly",
	KwRequire:             "KwRequire",
	KwRequireOnce:         "KwRequireOnce",
	KwReturn:              "KwReturn",
	KwStatic:              "KwStatic",
	KwSwitch:              "KwSwitch",
	KwThrow:               "KwThrow",
	KwTrait:               "KwTrait",
	KwTry:                 "KwTry",
	KwUnset:               "KwUnset",
	KwUse:                 "KwUse",
	KwVar:                 "KwVar",
	KwWhile:               "KwWhile",
	KwYield:               "KwYield",
	kwEnd:                 "",
	DoubleArrow:           "DoubleArrow",
	ObjectOperator:        "ObjectOperator",
	NullsafeObjOp:         "NullsafeObjOp",
	DoubleColon:           "DoubleColon",
	Ellipsis:              "Ellipsis",
	IsIdentical:           "IsIdentical",
	IsNotIdentical:        "IsNotIdentical",
	IsEqual:               "IsEqual",
	IsNotEqual:            "IsNotEqual",
	Spaceship:             "Spaceship",
	IsSmallerOrEq:         "IsSmallerOrEq",
	IsGreaterOrEq:         "IsGreaterOrEq",
	BooleanAnd:            "BooleanAnd",
	BooleanOr:             "BooleanOr",
	Inc:                   "Inc",
	Dec:                   "Dec",
	PlusEqual:             "PlusEqual",
	MinusEqual:            "MinusEqual",
	MulEqual:              "MulEqual",
	DivEqual:              "DivEqual",
	ConcatEqual:           "ConcatEqual",
	ModEqual:              "ModEqual",
	AndEqual:              "AndEqual",
	OrEqual:               "OrEqual",
	XorEqual:              "XorEqual",
	SlEqual:               "SlEqual",
	SrEqual:               "SrEqual",
	PowEqual:              "PowEqual",
	CoalesceEqual:         "CoalesceEqual",
	Sl:                    "Sl",
	Sr:                    "Sr",
	Coalesce:              "Coalesce",
	Pow:                   "Pow",
	Semicolon:             "Semicolon",
	Comma:                 "Comma",
	LParen:                "LParen",
	RParen:                "RParen",
	LBracket:              "LBracket",
	RBracket:              "RBracket",
	LBrace:                "LBrace",
	RBrace:                "RBrace",
	Assign:                "Assign",
	Plus:                  "Plus",
	Minus:                 "Minus",
	Star:                  "Star",
	Slash:                 "Slash",
	Percent:               "Percent",
	Dot:                   "Dot",
	Bang:                  "Bang",
	Tilde:                 "Tilde",
	Caret:                 "Caret",
	Amp:                   "Amp",
	Pipe:                  "Pipe",
	Lt:                    "Lt",
	Gt:                    "Gt",
	Question:              "Question",
	Colon:                 "Colon",
	At:                    "At",
	Dollar:                "Dollar",
	DoubleQuote:           "DoubleQuote",
	Backtick:              "Backtick",
	ArrayOpen:             "ArrayOpen",
	ArrayClose:            "ArrayClose",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if name != "" {
			m[name] = Kind(k)
		}
	}
	return m
}()

// ParseKind maps a name produced by Kind.String back to its kind.
func ParseKind(name string) (Kind, bool) {
	k, ok := kindByName[name]
	return k, ok
}

// IsKeyword reports whether k is a reserved word kind.
func (k Kind) IsKeyword() bool { return k > kwBegin && k < kwEnd }

// IsCast reports whether k is a type cast.
func (k Kind) IsCast() bool { return k >= IntCast && k <= UnsetCast }
