package hooker

import (
	"github.com/wnxd/hookhelper/abi"
	"github.com/wnxd/hookhelper/handler"
	"github.com/wnxd/hookhelper/internal/funcval"
)

// Retrieve binds *dst to the first of names that resolves.
func Retrieve[F any](h handler.Handler, dst *F, names ...string) bool {
	return retrieve(h, dst, false, names)
}

// RetrievePrefix is Retrieve with prefix matching.
func RetrievePrefix[F any](h handler.Handler, dst *F, names ...string) bool {
	return retrieve(h, dst, true, names)
}

func retrieve[F any](h handler.Handler, dst *F, matchPrefix bool, names []string) bool {
	if !funcval.IsFunc[F]() {
		return false
	}
	for _, name := range names {
		if addr, ok := handler.Resolve(h, name, matchPrefix); ok {
			*dst = funcval.Make[F](addr)
			return true
		}
	}
	return false
}

// RetrieveMember binds *dst to the first of names that resolves.
func RetrieveMember[This any, F any](h handler.Handler, dst *abi.MemberFunction[This, F], names ...string) bool {
	for _, name := range names {
		if addr, ok := handler.Resolve(h, name, false); ok {
			m, err := abi.FromAddr[This, F](addr)
			if err != nil {
				return false
			}
			*dst = m
			return true
		}
	}
	return false
}

// RetrieveField returns the data symbol name as a typed pointer, or nil.
func RetrieveField[T any](h handler.Handler, name string) *T {
	addr, ok := handler.Resolve(h, name, false)
	if !ok {
		return nil
	}
	return funcval.Ptr[T](addr)
}
