package symtab

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"os"
)

// LoadELF reads the static and dynamic symbol tables of the ELF file at
// path. Symbol values are rebased by base, the module's load address.
func LoadELF(path string, base uintptr) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadELF(f, base)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return t, nil
}

func ReadELF(r io.ReaderAt, base uintptr) (*Table, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var syms []elf.Symbol
	for _, read := range []func() ([]elf.Symbol, error){f.Symbols, f.DynamicSymbols} {
		s, err := read()
		if errors.Is(err, elf.ErrNoSymbols) {
			continue
		} else if err != nil {
			return nil, err
		}
		syms = append(syms, s...)
	}
	if len(syms) == 0 {
		return nil, elf.ErrNoSymbols
	}

	t := NewTable()
	for _, s := range syms {
		if s.Name == "" || s.Section == elf.SHN_UNDEF || s.Value == 0 {
			continue
		}
		switch elf.ST_TYPE(s.Info) {
		case elf.STT_FUNC, elf.STT_OBJECT, elf.STT_NOTYPE, elf.STT_LOOS: // STT_LOOS is STT_GNU_IFUNC
		default:
			continue
		}
		if _, ok := t.Lookup(s.Name); ok {
			continue
		}
		t.Add(Symbol{Name: s.Name, Addr: base + uintptr(s.Value), Size: s.Size})
	}
	return t, nil
}
