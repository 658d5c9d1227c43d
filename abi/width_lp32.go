//go:build 386 || arm || mips || mipsle

package abi

const (
	Is64Bit     = false
	PointerSize = 4
)
