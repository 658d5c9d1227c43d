package hooker

import (
	"github.com/wnxd/hookhelper/abi"
	"github.com/wnxd/hookhelper/handler"
	"github.com/wnxd/hookhelper/symbol"
	"go.uber.org/zap"
)

// MemHooker hooks a method of This. F takes the receiver as its first
// argument and Replace must have the same shape.
type MemHooker[This any, F any] struct {
	Sym         symbol.Name
	MatchPrefix bool
	Replace     F

	backup  abi.MemberFunction[This, F]
	patched bool
}

func NewMem[This any, F any](sym symbol.Name, replace F) *MemHooker[This, F] {
	return &MemHooker[This, F]{Sym: sym, Replace: replace}
}

func (e *MemHooker[This, F]) Symbol() symbol.Name {
	return e.Sym
}

func (e *MemHooker[This, F]) Hooked() bool {
	return e.backup.Bound()
}

func (e *MemHooker[This, F]) Backup() abi.MemberFunction[This, F] {
	return e.backup
}

// Call invokes the original through the backup.
func (e *MemHooker[This, F]) Call() F {
	return e.backup.Fn()
}

func (e *MemHooker[This, F]) Install(h handler.Handler) bool {
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

func (e *MemHooker[This, F]) InstallAt(h handler.Handler, original uintptr) bool {
	if e.patched {
		return e.Hooked()
	}
	replace, err := abi.FromPlain[This](e.Replace)
	if err != nil {
		Logger().Debug("invalid replacement", zap.String("symbol", string(e.Sym)), zap.Error(err))
		return false
	}
	backup, patched := install(h, e.Sym, original, replace.Addr())
	e.patched = patched
	if backup == 0 {
		return false
	}
	e.backup, err = abi.FromAddr[This, F](backup)
	return err == nil
}
