// Package funcval converts between Go func values and the code addresses
// a module capability works with.
package funcval

import (
	"reflect"
	"unsafe"

	"github.com/modern-go/reflect2"
)

// funcval is the runtime representation a func value points to.
type funcval struct {
	fn uintptr
	// closure context follows; only context-free funcs round-trip
}

// Addr returns the entry address of f, or 0 for a nil func.
func Addr[F any](f F) uintptr {
	if !IsFunc[F]() {
		return 0
	}
	fv := *(**funcval)(unsafe.Pointer(&f))
	if fv == nil {
		return 0
	}
	return fv.fn
}

// Make returns a func value of type F that enters code at addr.
// The code must follow the Go calling convention for F's signature.
func Make[F any](addr uintptr) (f F) {
	if addr == 0 || !IsFunc[F]() {
		return
	}
	*(**funcval)(unsafe.Pointer(&f)) = &funcval{fn: addr}
	return
}

func IsFunc[F any]() bool {
	return TypeOf[F]().Kind() == reflect.Func
}

func TypeOf[T any]() reflect2.Type {
	return reflect2.TypeOfPtr((*T)(nil)).Elem()
}

// Ptr reads a data address as a typed pointer.
func Ptr[T any](addr uintptr) *T {
	return *(**T)(unsafe.Pointer(&addr))
}

func Sizeof[V any]() uintptr {
	var v V
	return unsafe.Sizeof(v)
}
