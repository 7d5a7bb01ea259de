// Package ir is the wire form of timeset values.
//
// It provides a small sealed value model (IRString, IRInt, IRBool, IRArray,
// IRObject), RFC 8785 canonical JSON over that model, and content-addressed
// identities for sets and traces.
//
// Constraints:
//   - no floats and no null anywhere; instants are integers or RFC 3339 text
//   - object keys are emitted in UTF-16 code unit order
//   - strings are NFC normalized before encoding
//
// Because a timeset.Set has a unique canonical form, two sets are equal iff
// their canonical encodings, and therefore their SetIDs, are equal.
package ir
