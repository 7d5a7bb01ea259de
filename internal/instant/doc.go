// Package instant supplies concrete instant representations for the
// timeset engine.
//
// Three representations are provided:
//   - time.Time / time.Duration, which satisfy timeset.Instant directly
//   - Tick / Ticks, an integer logical timeline
//   - Value / Delta, a run-time tagged union of the two, for documents and
//     command lines that mix representations only by mistake
//
// Comparing a tick Value with a time Value is a type mismatch. Since
// timeset.Instant.Compare has no error return, the mismatch surfaces as a
// panic carrying *MismatchError; Guard turns it back into an error at the
// call site, and Uniform rejects mixed input before any engine call.
package instant
