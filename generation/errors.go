package generation

/*
 * Licensed under LGPL-3.0.
 *
 * You can get a copy of the LGPL-3.0 License at
 *
 * https://www.gnu.org/licenses/lgpl-3.0.en.html
 *
 * @wcgcyx - https://github.com/wcgcyx
 */

import "errors"

var (
	// ErrStackUnderflow is returned when a peek or pop goes below the stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrStackOverflow is returned when a user context pushes past the stack limit.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrWitnessQueueExhausted is returned when popping an empty witness queue.
	ErrWitnessQueueExhausted = errors.New("witness queue exhausted")

	// ErrWitnessQueueNotDrained is returned when generation ends with witness
	// values left unconsumed.
	ErrWitnessQueueNotDrained = errors.New("witness queue not drained")

	// ErrForeignCheckpoint is returned when rolling back a checkpoint issued
	// by another generation state.
	ErrForeignCheckpoint = errors.New("checkpoint issued by another generation state")

	// ErrCheckpointRevoked is returned when rolling back a checkpoint that has
	// been consumed, or revoked by rolling back an older checkpoint.
	ErrCheckpointRevoked = errors.New("checkpoint already consumed or revoked")

	// ErrNoMoreTxns is returned when advancing past the last signed txn.
	ErrNoMoreTxns = errors.New("no more signed txns")

	// ErrStorageRootMismatch is returned when a storage trie does not hash to
	// the storage root of its account.
	ErrStorageRootMismatch = errors.New("storage trie does not match account storage root")

	// ErrBranchValue is returned when a state trie branch carries a value.
	ErrBranchValue = errors.New("state trie branch carries a value")

	// ErrInvalidStateKey is returned when a state trie leaf is not at a full
	// 32 byte key.
	ErrInvalidStateKey = errors.New("invalid state key")
)
