//go:build !(arm || arm64 || mips || mipsle || mips64 || mips64le)

package abi

// Generic Itanium encoding: a virtual member stores 1 + vtable offset in
// Ptr; the adjustment is stored as is.

func NewMemberPointer(ptr uintptr, adj int) MemberPointer {
	return MemberPointer{Ptr: ptr, Adj: adj}
}

func NewVirtualPointer(vtableOffset uintptr, adj int) MemberPointer {
	return MemberPointer{Ptr: vtableOffset + 1, Adj: adj}
}

func (mp MemberPointer) decode() (adj int, virtual bool, offset uintptr) {
	return mp.Adj, mp.Ptr&1 != 0, mp.Ptr - 1
}
