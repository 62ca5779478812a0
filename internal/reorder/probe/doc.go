// Package probe implements the reordering probe: the round loop, the two
// worker transactions, and the bookkeeping around them.
//
// # Protocol
//
// One probe owns two shared cells (X and Y), two observation slots, and two
// pinned workers. Every round runs the same rendezvous:
//
//  1. The orchestrator resets both cells to 0.
//  2. It releases each worker through that worker's start channel.
//  3. Each worker spins through a short pseudo-random delay, stores 1 into
//     its own cell, issues the configured ordering constraint, loads the
//     peer cell into its observation slot, and signals the shared
//     completion channel.
//  4. The orchestrator receives both completions, then classifies the pair
//     of observations.
//
// The outcome (0,0) means neither load saw the other worker's store. Under
// any sequentially consistent interleaving at least one store precedes both
// loads, so (0,0) is evidence that a store was deferred past the following
// load: a reordering.
//
// # Synchronization
//
// The cells are touched by plain loads and stores only; they carry the data
// race under observation. The start and completion channels do the actual
// synchronization: the completion send/receive pair makes each worker's slot
// write visible to the orchestrator before classification, and the start
// send/receive pair makes the reset visible to the workers before their next
// transaction. Nothing else orders the experiment, which is the point.
//
// # Timing discipline
//
// Everything on the round path stays allocation-free and syscall-free. The
// pre-store delay spins instead of sleeping, the stop channel is inspected
// only between rounds, and report lines are written only when an anomaly has
// already been found. A blocking wait inside the transaction would serialize
// the workers on the scheduler and close the reordering window being
// measured.
package probe
