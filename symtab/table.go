// Package symtab is a reference handler.Handler backed by a module's
// symbol table. Code patching is delegated to a Patcher.
package symtab

import (
	"slices"
	"strings"

	"golang.org/x/exp/constraints"
)

type Symbol struct {
	Name string
	Addr uintptr
	Size uint64
}

// Table indexes symbols by name, by sorted name for prefix lookups and by
// address.
type Table struct {
	byName map[string]Symbol
	names  []string
	addrs  []Symbol
}

func NewTable(syms ...Symbol) *Table {
	t := &Table{byName: make(map[string]Symbol, len(syms))}
	for _, sym := range syms {
		t.Add(sym)
	}
	return t
}

// Add inserts sym. An existing symbol of the same name is replaced.
func (t *Table) Add(sym Symbol) {
	if old, ok := t.byName[sym.Name]; ok {
		if i, found := t.searchAddr(old); found {
			t.addrs = slices.Delete(t.addrs, i, i+1)
		}
	} else {
		i, _ := slices.BinarySearch(t.names, sym.Name)
		t.names = slices.Insert(t.names, i, sym.Name)
	}
	t.byName[sym.Name] = sym
	i, _ := t.searchAddr(sym)
	t.addrs = slices.Insert(t.addrs, i, sym)
}

func (t *Table) searchAddr(sym Symbol) (int, bool) {
	return slices.BinarySearchFunc(t.addrs, sym, func(a, b Symbol) int {
		if a.Addr != b.Addr {
			if a.Addr < b.Addr {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
}

func (t *Table) Len() int {
	return len(t.names)
}

func (t *Table) Lookup(name string) (Symbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

// LookupPrefix returns the lexically first symbol starting with prefix.
func (t *Table) LookupPrefix(prefix string) (Symbol, bool) {
	i, _ := slices.BinarySearch(t.names, prefix)
	if i < len(t.names) && strings.HasPrefix(t.names[i], prefix) {
		return t.byName[t.names[i]], true
	}
	return Symbol{}, false
}

// SymbolAt returns the nearest symbol at or below addr whose extent
// covers addr.
func (t *Table) SymbolAt(addr uintptr) (Symbol, bool) {
	n, _ := slices.BinarySearchFunc(t.addrs, addr, func(s Symbol, a uintptr) int {
		if s.Addr <= a {
			return -1
		}
		return 1
	})
	for i := n - 1; i >= 0; i-- {
		if sym := t.addrs[i]; contains(uint64(sym.Addr), sym.Size, uint64(addr)) {
			return sym, true
		}
	}
	return Symbol{}, false
}

// Symbols iterates in name order.
func (t *Table) Symbols(yield func(Symbol) bool) {
	for _, name := range t.names {
		if !yield(t.byName[name]) {
			return
		}
	}
}

func contains[I constraints.Unsigned](begin, size, addr I) bool {
	return addr >= begin && addr-begin < size
}
