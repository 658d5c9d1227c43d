// Package hooker installs replacement functions over symbols resolved
// through a handler.Handler and keeps a callable backup of the original.
//
// Entries are meant to be created and installed once, from a single
// goroutine, before any hooked path can run. Backup fields are written
// without synchronization; a replacement must not run before Install
// has returned true for its entry.
package hooker

import (
	"github.com/wnxd/hookhelper/handler"
	"github.com/wnxd/hookhelper/internal/funcval"
	"github.com/wnxd/hookhelper/symbol"
	"go.uber.org/zap"
)

type Entry interface {
	Symbol() symbol.Name
	Hooked() bool
	Install(h handler.Handler) bool
	InstallAt(h handler.Handler, original uintptr) bool
}

// Hooker hooks a free function of type F.
type Hooker[F any] struct {
	Sym symbol.Name
	// MatchPrefix falls back to a prefix lookup of Sym.
	MatchPrefix bool
	Replace     F

	backup     F
	backupAddr uintptr
	// patched is set once Hook has been accepted, even without a usable backup.
	patched bool
}

func New[F any](sym symbol.Name, replace F) *Hooker[F] {
	return &Hooker[F]{Sym: sym, Replace: replace}
}

func (e *Hooker[F]) Symbol() symbol.Name {
	return e.Sym
}

func (e *Hooker[F]) Hooked() bool {
	return e.backupAddr != 0
}

// Backup calls the original implementation once installed.
func (e *Hooker[F]) Backup() F {
	return e.backup
}

// BackupAddr returns the address the handler returned on installation.
func (e *Hooker[F]) BackupAddr() uintptr {
	return e.backupAddr
}

// Install resolves Sym and hooks it. Once the handler has accepted a hook
// for this entry, later calls never patch again and only report Hooked.
func (e *Hooker[F]) Install(h handler.Handler) bool {
	if e.patched {
		return e.Hooked()
	}
	original, ok := handler.Resolve(h, string(e.Sym), e.MatchPrefix)
	if !ok {
		Logger().Debug("symbol not found", zap.String("symbol", string(e.Sym)))
		return false
	}
	return e.InstallAt(h, original)
}

// InstallAt hooks an address resolved by the caller.
func (e *Hooker[F]) InstallAt(h handler.Handler, original uintptr) bool {
	if e.patched {
		return e.Hooked()
	}
	backup, patched := install(h, e.Sym, original, funcval.Addr(e.Replace))
	e.patched = patched
	if backup == 0 {
		return false
	}
	e.backupAddr = backup
	e.backup = funcval.Make[F](backup)
	return true
}

// install asks h to hook original. patched reports whether h accepted the
// hook; the returned backup is 0 when there is nothing to call through.
func install(h handler.Handler, sym symbol.Name, original, replace uintptr) (backup uintptr, patched bool) {
	log := Logger().With(zap.String("symbol", string(sym)))
	if original == 0 {
		return 0, false
	} else if replace == 0 {
		log.Debug("replacement missing")
		return 0, false
	}
	backup, err := h.Hook(original, replace)
	if err != nil {
		log.Debug("hook failed", zap.Uintptr("original", original), zap.Error(err))
		return 0, false
	} else if backup == 0 {
		log.Warn("hook returned no backup, entry will not be patched again", zap.Uintptr("original", original))
		return 0, true
	}
	log.Debug("hooked",
		zap.Uintptr("original", original),
		zap.Uintptr("replacement", replace),
		zap.Uintptr("backup", backup),
	)
	return backup, true
}
