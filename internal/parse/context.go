package parse

// context is the small plain value threaded by copy through every
// grammar combinator (spec.md §9: "never a mutable thread-local or
// implicit reader"). indent is informational nesting depth; the
// actual offside-rule column a block must match is discovered at
// parse time from the source position of the block's first statement,
// not stored here. allowNewlines toggles on inside brackets and
// parentheses and off at statement top level (spec.md §4.1).
type context struct {
	indent        int
	allowNewlines bool
}

func newContext() context {
	return context{}
}

// incrementIndentation returns a copy of c one nesting level deeper.
func (c context) incrementIndentation() context {
	c.indent++
	return c
}

// allowNewlinesInExpressions returns a copy of c that permits newlines
// and comments to separate tokens within the current expression.
func (c context) allowNewlinesInExpressions() context {
	c.allowNewlines = true
	return c
}

// disallowNewlinesInExpressions returns a copy of c that forbids
// newlines from separating tokens within the current expression.
func (c context) disallowNewlinesInExpressions() context {
	c.allowNewlines = false
	return c
}
