package abi

import (
	"fmt"
	"reflect"

	"github.com/modern-go/reflect2"
	"github.com/wnxd/hookhelper/internal/funcval"
)

// MemberFunction is a handle to a function taking a receiver of type This
// as its first argument. F is the full signature including the receiver,
// e.g. func(*Object, int) bool.
//
// The zero value is unbound.
type MemberFunction[This any, F any] struct {
	mp MemberPointer
	fn F
	// plain handles hold a bare code address in mp.Ptr that is never
	// decoded as a member pointer.
	plain bool
}

// FromPlain wraps a plain function with an explicit receiver. Its first
// parameter must be This or unsafe.Pointer.
func FromPlain[This any, F any](f F) (m MemberFunction[This, F], err error) {
	if err = checkSignature[This, F](true); err != nil {
		return
	}
	m.mp, m.plain = MemberPointer{Ptr: funcval.Addr(f)}, true
	if m.Bound() {
		m.fn = f
	}
	return
}

// FromMember wraps a method expression such as (*Object).Method.
func FromMember[This any, F any](f F) (m MemberFunction[This, F], err error) {
	if err = checkSignature[This, F](false); err != nil {
		return
	}
	m.mp, m.plain = MemberPointer{Ptr: funcval.Addr(f)}, true
	if m.Bound() {
		m.fn = f
	}
	return
}

// FromAddr wraps a code address following F's calling convention with no
// receiver adjustment. addr is taken as is, odd Thumb addresses included.
func FromAddr[This any, F any](addr uintptr) (m MemberFunction[This, F], err error) {
	if err = checkSignature[This, F](true); err != nil {
		return
	}
	m.mp, m.plain = MemberPointer{Ptr: addr}, true
	if addr != 0 {
		m.fn = funcval.Make[F](addr)
	}
	return
}

// FromPointer wraps a raw native member function pointer, honoring a
// non-zero adjustment and virtual dispatch.
func FromPointer[This any, F any](mp MemberPointer) (m MemberFunction[This, F], err error) {
	if err = checkSignature[This, F](true); err != nil {
		return
	}
	m.mp = mp
	switch {
	case mp.IsNil():
	case mp.Adjustment() == 0 && !mp.IsVirtual():
		m.fn = funcval.Make[F](mp.Ptr)
	default:
		m.fn = adjusted[F](mp)
	}
	return
}

func (m MemberFunction[This, F]) Bound() bool {
	if m.plain {
		return m.mp.Ptr != 0
	}
	return !m.mp.IsNil()
}

// Fn returns the callable. The receiver is its first argument.
func (m MemberFunction[This, F]) Fn() F {
	return m.fn
}

// Addr returns the code address with any adjustment stripped. For virtual
// members this is the encoded vtable slot.
func (m MemberFunction[This, F]) Addr() uintptr {
	return m.mp.Ptr
}

func (m MemberFunction[This, F]) Adjustment() int {
	if m.plain {
		return 0
	}
	return m.mp.Adjustment()
}

func (m MemberFunction[This, F]) Pointer() MemberPointer {
	return m.mp
}

// MustAddr is Addr for callers that require a bound handle.
func (m MemberFunction[This, F]) MustAddr() uintptr {
	if !m.Bound() {
		panic(ErrUnbound)
	}
	return m.mp.Ptr
}

func checkSignature[This any, F any](allowVoid bool) error {
	typ := funcval.TypeOf[F]()
	if typ.Kind() != reflect.Func {
		return fmt.Errorf("%w: %s", ErrNotFunc, typ)
	}
	t := typ.Type1()
	if t.NumIn() == 0 {
		return fmt.Errorf("%w: %s takes no receiver", ErrReceiverType, t)
	}
	this := funcval.TypeOf[This]()
	in := reflect2.Type2(t.In(0))
	switch {
	case in.Type1() == this.Type1():
	case allowVoid && in.Kind() == reflect.UnsafePointer:
	default:
		return fmt.Errorf("%w: %s, want %s", ErrReceiverType, in, this)
	}
	switch in.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrReceiverKind, in)
}

// adjusted builds F around mp, fixing up the receiver before every call.
func adjusted[F any](mp MemberPointer) F {
	typ := funcval.TypeOf[F]().Type1()
	recv := typ.In(0)
	fn := reflect.MakeFunc(typ, func(args []reflect.Value) []reflect.Value {
		this, code := mp.Resolve(args[0].UnsafePointer())
		if recv.Kind() == reflect.UnsafePointer {
			args[0] = reflect.ValueOf(this).Convert(recv)
		} else {
			args[0] = reflect.NewAt(recv.Elem(), this).Convert(recv)
		}
		target := reflect.ValueOf(funcval.Make[F](code))
		if typ.IsVariadic() {
			return target.CallSlice(args)
		}
		return target.Call(args)
	})
	return fn.Interface().(F)
}
