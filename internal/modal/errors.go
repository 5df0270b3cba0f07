package modal

import "errors"

// errEmptyGrammar is returned by New when a Grammar builds zero
// CommandParsers: a bank with nothing in it can never accept, so
// treating it as a construction error catches a misused Grammar
// before the first Feed call rather than after.
var errEmptyGrammar = errors.New("modal: grammar has no rules")
