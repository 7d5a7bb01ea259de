package ir

import (
	"slices"
	"unicode/utf16"
)

// IRValue is a sealed interface over the value types that may appear in
// canonical output.
type IRValue interface {
	irValue()
}

// IRString is a string value.
type IRString string

// IRInt is an integer value. There is no float counterpart.
type IRInt int64

// IRBool is a boolean value.
type IRBool bool

// IRArray is an ordered list of values.
type IRArray []IRValue

// IRObject maps keys to values. Use SortedKeys for deterministic iteration.
type IRObject map[string]IRValue

func (IRString) irValue() {}
func (IRInt) irValue()    {}
func (IRBool) irValue()   {}
func (IRArray) irValue()  {}
func (IRObject) irValue() {}

// SortedKeys returns the keys in RFC 8785 order (UTF-16 code units). This
// differs from Go's byte-wise string order for characters outside the BMP.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
