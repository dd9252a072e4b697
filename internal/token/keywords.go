package token

import "strings"

var keywords = map[string]Kind{
	"abstract":     KwAbstract,
	"and":          KwLogicalAnd,
	"array":        KwArray,
	"as":           KwAs,
	"break":        KwBreak,
	"callable":     KwCallable,
	"case":         KwCase,
	"catch":        KwCatch,
	"class":        KwClass,
	"clone":        KwClone,
	"const":        KwConst,
	"continue":     KwContinue,
	"declare":      KwDeclare,
	"default":      KwDefault,
	"die":          KwExit,
	"do":           KwDo,
	"echo":         KwEcho,
	"else":         KwElse,
	"elseif":       KwElseif,
	"empty":        KwEmpty,
	"enddeclare":   KwEnddeclare,
	"endfor":       KwEndfor,
	"endforeach":   KwEndforeach,
	"endif":        KwEndif,
	"endswitch":    KwEndswitch,
	"endwhile":     KwEndwhile,
	"enum":         KwEnum,
	"eval":         KwEval,
	"exit":         KwExit,
	"extends":      KwExtends,
	"final":        KwFinal,
	"finally":      KwFinally,
	"fn":           KwFn,
	"for":          KwFor,
	"foreach":      KwForeach,
	"function":     KwFunction,
	"global":       KwGlobal,
	"goto":         KwGoto,
	"if":           KwIf,
	"implements":   KwImplements,
	"include":      KwInclude,
	"include_once": KwIncludeOnce,
	"instanceof":   KwInstanceof,
	"insteadof":    KwInsteadof,
	"interface":    KwInterface,
	"isset":        KwIsset,
	"list":         KwList,
	"match":        KwMatch,
	"namespace":    KwNamespace,
	"new":          KwNew,
	"or":           KwLogicalOr,
	"print":        KwPrint,
	"private":      KwPrivate,
	"protected":    KwProtected,
	"public":       KwPublic,
	"readonly":     KwReadonly,
	"require":      KwRequire,
	"require_once": KwRequireOnce,
	"return":       KwReturn,
	"static":       KwStatic,
	"switch":       KwSwitch,
	"throw":        KwThrow,
	"trait":        KwTrait,
	"try":          KwTry,
	"unset":        KwUnset,
	"use":          KwUse,
	"var":          KwVar,
	"while":        KwWhile,
	"xor":          KwLogicalXor,
	"yield":        KwYield,
}

var magicConstants = map[string]struct{}{
	"__class__":     {},
	"__dir__":       {},
	"__file__":      {},
	"__function__":  {},
	"__line__":      {},
	"__method__":    {},
	"__namespace__": {},
	"__trait__":     {},
}

// LookupKeyword returns the keyword kind for ident. Keywords are matched
// case-insensitively; magic constants map to MagicConst.
func LookupKeyword(ident string) (Kind, bool) {
	lower := strings.ToLower(ident)
	if k, ok := keywords[lower]; ok {
		return k, true
	}
	if _, ok := magicConstants[lower]; ok {
		return MagicConst, true
	}
	return Invalid, false
}

var punct = map[string]Kind{
	"=>":  DoubleArrow,
	"->":  ObjectOperator,
	"?->": NullsafeObjOp,
	"::":  DoubleColon,
	"...": Ellipsis,
	"===": IsIdentical,
	"!==": IsNotIdentical,
	"==":  IsEqual,
	"!=":  IsNotEqual,
	"<>":  IsNotEqual,
	"<=>": Spaceship,
	"<=":  IsSmallerOrEq,
	">=":  IsGreaterOrEq,
	"&&":  BooleanAnd,
	"||":  BooleanOr,
	"++":  Inc,
	"--":  Dec,
	"+=":  PlusEqual,
	"-=":  MinusEqual,
	"*=":  MulEqual,
	"/=":  DivEqual,
	".=":  ConcatEqual,
	"%=":  ModEqual,
	"&=":  AndEqual,
	"|=":  OrEqual,
	"^=":  XorEqual,
	"<<=": SlEqual,
	">>=": SrEqual,
	"**=": PowEqual,
	"??=": CoalesceEqual,
	"<<":  Sl,
	">>":  Sr,
	"??":  Coalesce,
	"**":  Pow,
	";":   Semicolon,
	",":   Comma,
	"(":   LParen,
	")":   RParen,
	"[":   LBracket,
	"]":   RBracket,
	"{":   LBrace,
	"}":   RBrace,
	"=":   Assign,
	"+":   Plus,
	"-":   Minus,
	"*":   Star,
	"/":   Slash,
	"%":   Percent,
	".":   Dot,
	"!":   Bang,
	"~":   Tilde,
	"^":   Caret,
	"&":   Amp,
	"|":   Pipe,
	"<":   Lt,
	">":   Gt,
	"?":   Question,
	":":   Colon,
	"@":   At,
	"$":   Dollar,
	"\"":  DoubleQuote,
	"`":   Backtick,
	"\\":  NsSeparator,
	"${":  DollarOpenCurlyBraces,
	"#[":  AttributeStart,
}

// LookupPunct returns the operator or punctuation kind spelled by text.
func LookupPunct(text string) (Kind, bool) {
	k, ok := punct[text]
	return k, ok
}
