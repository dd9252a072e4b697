package token

import "strings"

var magicMethods = map[string]struct{}{
	"__construct":  {},
	"__destruct":   {},
	"__call":       {},
	"__callstatic": {},
	"__get":        {},
	"__set":        {},
	"__isset":      {},
	"__unset":      {},
	"__sleep":      {},
	"__wakeup":     {},
	"__tostring":   {},
	"__invoke":     {},
	"__set_state":  {},
	"__clone":      {},
}

// IsMagicMethodName reports whether name is one of the reserved magic method
// names. Method names are case-insensitive.
func IsMagicMethodName(name string) bool {
	_, ok := magicMethods[strings.ToLower(name)]
	return ok
}
