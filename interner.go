package sexpdata

// Interner is an optional, caller-owned cache of symbol values. Interning
// only shares allocations; symbol equality is structural with or without
// it. An Interner is not safe for concurrent use.
type Interner struct {
	syms map[string]*Value
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{
		syms: make(map[string]*Value),
	}
}

// Symbol returns the shared symbol value for name, creating it on first
// use. Empty names are rejected like in NewSymbol.
func (in *Interner) Symbol(name string) (*Value, error) {
	if v, ok := in.syms[name]; ok {
		return v, nil
	}
	v, err := NewSymbol(name)
	if err != nil {
		return nil, err
	}
	in.syms[name] = v
	return v, nil
}

// Len returns the number of interned symbols.
func (in *Interner) Len() int {
	return len(in.syms)
}
