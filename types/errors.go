package types

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
	// ErrWordTooLong is returned when an encoded word has more than 32 bytes.
	ErrWordTooLong = errors.New("word longer than 32 bytes")

	// ErrTrailingBytes is returned when bytes are left after decoding.
	ErrTrailingBytes = errors.New("trailing bytes after decoding")
)
