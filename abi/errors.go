package abi

import "errors"

var (
	ErrNotFunc      = errors.New("not a func type")
	ErrReceiverType = errors.New("receiver type mismatch")
	ErrReceiverKind = errors.New("receiver is not pointer shaped")
	ErrUnbound      = errors.New("member function unbound")
)
