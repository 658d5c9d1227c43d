package handler

import "errors"

var (
	ErrSymbolNotFound  = errors.New("symbol not found")
	ErrHookUnsupported = errors.New("hook unsupported")
	ErrAddressInvalid  = errors.New("address invalid")
)
