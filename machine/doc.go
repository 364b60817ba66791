// Package machine implements the Intcode stored-program machine and its
// assembler.
//
// The machine consists of a growable linear memory of signed integers, a
// program counter (Pc), a base pointer (Bp) used by relative addressing,
// and references to an input and an output queue. Instructions are decoded
// from the integer at Pc: the low two decimal digits select the operation,
// and each following digit selects the addressing mode of one operand.
//
// Execution never blocks. An Input instruction with nothing queued rewinds
// Pc and reports STATUS_BLOCKED, so the caller can supply more input and run
// the machine again. This lets a single-threaded harness interleave any
// number of machines connected through shared queues.
//
// The assembler provides a small assembly language for Intcode, with labels,
// equates, and compile-time expression evaluation.
package machine
