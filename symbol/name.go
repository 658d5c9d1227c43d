// Package symbol provides the name type hook entries are keyed by.
//
// A Name is declared as a typed constant, so the target of a hook is fixed
// at compile time and costs nothing at run time:
//
//	const Open symbol.Name = "open"
//	const Open64 = Open + "64" // still a constant
package symbol

import "strings"

type Name string

func (n Name) String() string {
	return string(n)
}

func (n Name) Len() int {
	return len(n)
}

// CString returns the name as a NUL-terminated byte sequence. Every call
// allocates a fresh len(n)+1 byte buffer; callers passing the same name
// repeatedly should keep the result. String and Len do not allocate.
func (n Name) CString() []byte {
	b := make([]byte, len(n)+1)
	copy(b, n)
	return b
}

// Append joins n with dynamic text. The result is no longer a Name.
func (n Name) Append(s string) string {
	return string(n) + s
}

// Prepend joins dynamic text with n.
func (n Name) Prepend(s string) string {
	return s + string(n)
}

func (n Name) HasPrefix(prefix Name) bool {
	return strings.HasPrefix(string(n), string(prefix))
}

func Concat(a, b Name) Name {
	return a + b
}
