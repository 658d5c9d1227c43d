package hooker

import (
	"sort"
	"strings"
	"sync"

	"github.com/wnxd/hookhelper/handler"
)

// fakeHandler resolves symbols from a map and records hook requests. By
// default Hook hands the original address back as the backup.
type fakeHandler struct {
	mu      sync.Mutex
	syms    map[string]uintptr
	backups map[uintptr]uintptr
	hookErr error

	lookups []string
	hooks   [][2]uintptr
}

func newFakeHandler(syms map[string]uintptr) *fakeHandler {
	return &fakeHandler{syms: syms, backups: make(map[uintptr]uintptr)}
}

func (h *fakeHandler) GetSymbol(name string) (uintptr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lookups = append(h.lookups, name)
	if addr, ok := h.syms[name]; ok {
		return addr, nil
	}
	return 0, handler.ErrSymbolNotFound
}

func (h *fakeHandler) GetSymbolPrefix(prefix string) (uintptr, error) {
	names := make([]string, 0, len(h.syms))
	for name := range h.syms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			return h.syms[name], nil
		}
	}
	return 0, handler.ErrSymbolNotFound
}

func (h *fakeHandler) hookCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.hooks)
}

func (h *fakeHandler) GetSymbolInfo(name string) (handler.SymbolInfo, error) {
	addr, err := h.GetSymbol(name)
	return handler.SymbolInfo{Addr: addr}, err
}

func (h *fakeHandler) Hook(original, replacement uintptr) (uintptr, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, [2]uintptr{original, replacement})
	if h.hookErr != nil {
		return 0, h.hookErr
	}
	if backup, ok := h.backups[original]; ok {
		return backup, nil
	}
	return original, nil
}
