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

import (
	"fmt"

	"github.com/holiman/uint256"
)

// witnessQueue hands out witness values in the order they were derived.
type witnessQueue struct {
	name   string
	values []uint256.Int
	next   int
}

func newWitnessQueue(name string, values []uint256.Int) *witnessQueue {
	return &witnessQueue{name: name, values: values}
}

// pop gets the next value.
func (q *witnessQueue) pop() (uint256.Int, error) {
	if q.next >= len(q.values) {
		return uint256.Int{}, fmt.Errorf("%v queue after %v values: %w", q.name, len(q.values), ErrWitnessQueueExhausted)
	}
	v := q.values[q.next]
	q.next++
	return v, nil
}

// remaining gets the number of values not yet popped.
func (q *witnessQueue) remaining() int {
	return len(q.values) - q.next
}

// checkDrained checks that every value has been popped.
func (q *witnessQueue) checkDrained() error {
	if left := q.remaining(); left > 0 {
		return fmt.Errorf("%v queue has %v of %v values left: %w", q.name, left, len(q.values), ErrWitnessQueueNotDrained)
	}
	return nil
}
