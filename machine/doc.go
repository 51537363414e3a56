// Package machine implements the execution engine of a Turing machine.
//
// A Machine owns a two-sided tape, the head position, the current state and
// a transition table keyed by (symbol, state). Symbols and states may be of
// any comparable type; they are interned to dense integer indices and the
// engine only ever operates on those indices.
//
// Execution is driven one transition at a time by Step. The machine starts
// Running, and stops either Halted (the designated halt state was reached)
// or Error (no transition is defined for the current symbol and state).
// Both are terminal until ResetTape.
//
// A Machine is not safe for concurrent use. The tape grows without bound
// as the head explores new cells, so a machine that never halts will
// eventually exhaust memory unless its caller stops stepping it.
package machine
