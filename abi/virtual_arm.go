//go:build arm || arm64 || mips || mipsle || mips64 || mips64le

package abi

// ARM-style Itanium encoding: the virtual flag lives in the low bit of the
// adjustment, which is stored shifted left by one. Ptr is the vtable offset
// for virtual members.

func NewMemberPointer(ptr uintptr, adj int) MemberPointer {
	return MemberPointer{Ptr: ptr, Adj: adj << 1}
}

func NewVirtualPointer(vtableOffset uintptr, adj int) MemberPointer {
	return MemberPointer{Ptr: vtableOffset, Adj: adj<<1 | 1}
}

func (mp MemberPointer) decode() (adj int, virtual bool, offset uintptr) {
	return mp.Adj >> 1, mp.Adj&1 != 0, mp.Ptr
}
