// Package handler defines the module capability hook entries are installed
// through. Implementations walk a loaded module's symbol table and patch
// machine code; this module only consumes them.
package handler

type SymbolInfo struct {
	Addr uintptr
	Size uint64
}

type Handler interface {
	// GetSymbol returns the address of the exported symbol with exactly this name.
	GetSymbol(name string) (uintptr, error)
	// GetSymbolPrefix returns the address of a symbol whose name starts with prefix.
	GetSymbolPrefix(prefix string) (uintptr, error)
	GetSymbolInfo(name string) (SymbolInfo, error)
	// Hook redirects original to replacement and returns the address that
	// still reaches the original implementation.
	Hook(original, replacement uintptr) (uintptr, error)
}

// Resolve looks name up exactly and, when matchPrefix is set and the exact
// lookup fails, as a prefix. A zero address counts as not found.
func Resolve(h Handler, name string, matchPrefix bool) (uintptr, bool) {
	if addr, err := h.GetSymbol(name); err == nil && addr != 0 {
		return addr, true
	} else if matchPrefix {
		if addr, err := h.GetSymbolPrefix(name); err == nil && addr != 0 {
			return addr, true
		}
	}
	return 0, false
}
