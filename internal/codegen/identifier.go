package codegen

// mangledPrefix is prepended to every user-bound identifier so it can
// never collide with a JS reserved word or a prelude builtin. Imported
// identifiers are exempt: they name bindings that live in another
// module entirely and must keep their original spelling.
const mangledPrefix = "B"

// emitter carries the set of names this document imports, the only
// state mangle needs to decide whether an occurrence stays bare.
type emitter struct {
	imported map[string]bool
}

func newEmitter(imported map[string]bool) *emitter {
	return &emitter{imported: imported}
}

func (e *emitter) mangle(name string) string {
	if e.imported[name] {
		return name
	}
	return mangledPrefix + name
}
