package lexer

import (
	"regexp"
)

// Building blocks of the line grammar.
const (
	identRe      = `[A-Za-z_]\w*`
	methodNameRe = `[A-Za-z]\w*`
	intRe        = `[+-]?\d+`
	doubleRe     = `[+-]?(?:\d+\.\d*|\.\d+)`
	stringRe     = `"[^"]*"`
	charRe       = `'.'`
	boolRe       = `true|false`
	typeRe       = `int|double|boolean|char|String`

	// boolean literals are covered by the identifier branch
	valueRe = `(?:` + doubleRe + `|` + intRe + `|` + stringRe + `|` + charRe + `|` + identRe + `)`
	entryRe = identRe + `(?:\s*=\s*` + valueRe + `)?`
	paramRe = `(?:final\s+)?(?:` + typeRe + `)\s+` + identRe
)

// Whole-line shapes. Each is anchored on both ends and they are mutually
// exclusive: a line matches at most one of them.
var (
	commentLine = regexp.MustCompile(`^//`)

	varDeclLine = regexp.MustCompile(`^\s*(?:final\s+)?(?:` + typeRe + `)\s+` +
		entryRe + `(?:\s*,\s*` + entryRe + `)*\s*;\s*$`)

	assignLine = regexp.MustCompile(`^\s*` + identRe + `\s*=\s*` + valueRe + `\s*;\s*$`)

	methodDeclLine = regexp.MustCompile(`^\s*void\s+` + methodNameRe + `\s*\(\s*` +
		`(?:` + paramRe + `(?:\s*,\s*` + paramRe + `)*)?\s*\)\s*\{\s*$`)

	callLine = regexp.MustCompile(`^\s*` + identRe + `\s*\(\s*` +
		`(?:` + valueRe + `(?:\s*,\s*` + valueRe + `)*)?\s*\)\s*;\s*$`)

	ifWhileLine = regexp.MustCompile(`^\s*(?:if|while)\s*\(\s*` +
		valueRe + `(?:\s*(?:&&|\|\|)\s*` + valueRe + `)*\s*\)\s*\{\s*$`)

	returnLine = regexp.MustCompile(`^\s*return\s*;\s*$`)
)

// Capturing variants used to take a classified line apart.
var (
	varDeclParts    = regexp.MustCompile(`^\s*(?:(final)\s+)?(` + typeRe + `)\s+(.*?)\s*;\s*$`)
	assignParts     = regexp.MustCompile(`^\s*(.*?)\s*;\s*$`)
	methodDeclParts = regexp.MustCompile(`^\s*void\s+(` + methodNameRe + `)\s*\((.*)\)\s*\{\s*$`)
	callParts       = regexp.MustCompile(`^\s*(` + identRe + `)\s*\((.*)\)\s*;\s*$`)
	ifWhileParts    = regexp.MustCompile(`^\s*(if|while)\s*\((.*)\)\s*\{\s*$`)
	paramParts      = regexp.MustCompile(`^(?:(final)\s+)?(` + typeRe + `)\s+(` + identRe + `)$`)
)

// Value shapes, anchored.
var (
	boolValue   = regexp.MustCompile(`^(?:` + boolRe + `)$`)
	intValue    = regexp.MustCompile(`^` + intRe + `$`)
	doubleValue = regexp.MustCompile(`^` + doubleRe + `$`)
	stringValue = regexp.MustCompile(`^` + stringRe + `$`)
	charValue   = regexp.MustCompile(`^` + charRe + `$`)
	identValue  = regexp.MustCompile(`^` + identRe + `$`)
)
