// Package abi bridges native C++ member function pointers and plain
// receiver-first functions into one callable handle.
package abi

import "unsafe"

// MemberPointer is the physical layout of an Itanium C++ pointer to member
// function: the code address (or encoded vtable offset) followed by the
// receiver adjustment in bytes.
type MemberPointer struct {
	Ptr uintptr
	Adj int
}

// NativeMemberPointerSize is the size of a pointer to member function on the
// build target.
const NativeMemberPointerSize uintptr = 2 * PointerSize

// Both differences must be representable as uintptr, so the build fails
// unless the sizes agree.
const (
	_ = unsafe.Sizeof(MemberPointer{}) - NativeMemberPointerSize
	_ = NativeMemberPointerSize - unsafe.Sizeof(MemberPointer{})
	_ = unsafe.Sizeof(uintptr(0)) - PointerSize
	_ = PointerSize - unsafe.Sizeof(uintptr(0))
)

// LPSelect picks the value for the build target's address width.
func LPSelect[T any](lp32, lp64 T) T {
	if Is64Bit {
		return lp64
	}
	return lp32
}

func (mp MemberPointer) IsNil() bool {
	return mp.Ptr == 0 && !mp.IsVirtual()
}

func (mp MemberPointer) IsVirtual() bool {
	_, virtual, _ := mp.decode()
	return virtual
}

// Adjustment returns the decoded receiver adjustment.
func (mp MemberPointer) Adjustment() int {
	adj, _, _ := mp.decode()
	return adj
}

// Resolve applies the adjustment to this and returns the adjusted receiver
// together with the code address to enter, reading the vtable for virtual
// members.
func (mp MemberPointer) Resolve(this unsafe.Pointer) (unsafe.Pointer, uintptr) {
	adj, virtual, offset := mp.decode()
	this = unsafe.Add(this, adj)
	if !virtual {
		return this, mp.Ptr
	}
	vtable := *(*unsafe.Pointer)(this)
	return this, *(*uintptr)(unsafe.Add(vtable, offset))
}
