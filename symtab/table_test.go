package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *Table {
	return NewTable(
		Symbol{Name: "_ZN3art9ArtMethod6InvokeEPNS_6ThreadE", Addr: 0x4000, Size: 0x200},
		Symbol{Name: "_ZN3art9ArtMethod6InvokeEv", Addr: 0x4400, Size: 0x80},
		Symbol{Name: "open", Addr: 0x1000, Size: 0x40},
		Symbol{Name: "open64", Addr: 0x1000, Size: 0x40},
		Symbol{Name: "gFlags", Addr: 0x9000, Size: 4},
	)
}

func TestTableLookup(t *testing.T) {
	tab := testTable()
	require.Equal(t, 5, tab.Len())

	sym, ok := tab.Lookup("open")
	require.True(t, ok)
	assert.Equal(t, uintptr(0x1000), sym.Addr)

	_, ok = tab.Lookup("close")
	assert.False(t, ok)
}

func TestTableLookupPrefix(t *testing.T) {
	tab := testTable()

	sym, ok := tab.LookupPrefix("_ZN3art9ArtMethod6Invoke")
	require.True(t, ok)
	assert.Equal(t, "_ZN3art9ArtMethod6InvokeEPNS_6ThreadE", sym.Name)

	sym, ok = tab.LookupPrefix("open")
	require.True(t, ok)
	assert.Equal(t, "open", sym.Name)

	_, ok = tab.LookupPrefix("zz")
	assert.False(t, ok)
	_, ok = tab.LookupPrefix("_ZN4")
	assert.False(t, ok)
}

func TestTableSymbolAt(t *testing.T) {
	tab := testTable()
	tests := []struct {
		addr  uintptr
		name  string
		found bool
	}{
		{addr: 0x1000, name: "open64", found: true},
		{addr: 0x103f, name: "open64", found: true},
		{addr: 0x1040, found: false},
		{addr: 0x4100, name: "_ZN3art9ArtMethod6InvokeEPNS_6ThreadE", found: true},
		{addr: 0x4420, name: "_ZN3art9ArtMethod6InvokeEv", found: true},
		{addr: 0x9003, name: "gFlags", found: true},
		{addr: 0x0fff, found: false},
		{addr: 0xffff, found: false},
	}
	for _, tt := range tests {
		sym, ok := tab.SymbolAt(tt.addr)
		require.Equal(t, tt.found, ok, "addr %#x", tt.addr)
		if tt.found {
			assert.Equal(t, tt.name, sym.Name, "addr %#x", tt.addr)
		}
	}
}

func TestTableReplace(t *testing.T) {
	tab := testTable()
	tab.Add(Symbol{Name: "open", Addr: 0x2000, Size: 0x10})

	require.Equal(t, 5, tab.Len())
	sym, ok := tab.Lookup("open")
	require.True(t, ok)
	assert.Equal(t, uintptr(0x2000), sym.Addr)

	at, ok := tab.SymbolAt(0x2008)
	require.True(t, ok)
	assert.Equal(t, "open", at.Name)
	at, ok = tab.SymbolAt(0x1008)
	require.True(t, ok)
	assert.Equal(t, "open64", at.Name)
}

func TestTableSymbols(t *testing.T) {
	var names []string
	for sym := range testTable().Symbols {
		names = append(names, sym.Name)
	}
	assert.Equal(t, []string{
		"_ZN3art9ArtMethod6InvokeEPNS_6ThreadE",
		"_ZN3art9ArtMethod6InvokeEv",
		"gFlags",
		"open",
		"open64",
	}, names)
}
