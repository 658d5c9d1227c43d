package symtab

import (
	"github.com/wnxd/hookhelper/handler"
)

// Patcher rewrites code at original to reach replacement and returns an
// address that still reaches the original implementation.
type Patcher interface {
	Patch(original, replacement uintptr) (uintptr, error)
}

type PatcherFunc func(original, replacement uintptr) (uintptr, error)

func (f PatcherFunc) Patch(original, replacement uintptr) (uintptr, error) {
	return f(original, replacement)
}

// Module is a handler.Handler over one loaded module.
type Module struct {
	name    string
	table   *Table
	patcher Patcher
}

var _ handler.Handler = (*Module)(nil)

// NewModule wraps table. patcher may be nil, in which case Hook fails with
// handler.ErrHookUnsupported.
func NewModule(name string, table *Table, patcher Patcher) *Module {
	return &Module{name: name, table: table, patcher: patcher}
}

func (m *Module) Name() string {
	return m.name
}

func (m *Module) Table() *Table {
	return m.table
}

func (m *Module) GetSymbol(name string) (uintptr, error) {
	if sym, ok := m.table.Lookup(name); ok {
		return sym.Addr, nil
	}
	return 0, handler.ErrSymbolNotFound
}

func (m *Module) GetSymbolPrefix(prefix string) (uintptr, error) {
	if sym, ok := m.table.LookupPrefix(prefix); ok {
		return sym.Addr, nil
	}
	return 0, handler.ErrSymbolNotFound
}

func (m *Module) GetSymbolInfo(name string) (handler.SymbolInfo, error) {
	if sym, ok := m.table.Lookup(name); ok {
		return handler.SymbolInfo{Addr: sym.Addr, Size: sym.Size}, nil
	}
	return handler.SymbolInfo{}, handler.ErrSymbolNotFound
}

func (m *Module) Hook(original, replacement uintptr) (uintptr, error) {
	if m.patcher == nil {
		return 0, handler.ErrHookUnsupported
	} else if original == 0 || replacement == 0 {
		return 0, handler.ErrAddressInvalid
	}
	return m.patcher.Patch(original, replacement)
}
