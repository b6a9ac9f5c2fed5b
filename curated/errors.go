// This file is part of Gopherfc.
//
// Gopherfc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherfc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherfc.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with Errorf() and are identified by the pattern
// used to create them rather than by the formatted message.
//
//	e := curated.Errorf("cartridge: %v", err)
//	if curated.Is(e, "cartridge: %v") {
//		...
//	}
//
// Has() is similar but looks for the pattern anywhere in the error chain.
//
// Error() normalises the message by removing duplicate adjacent parts of the
// chain. For example, "cartridge: cartridge: bad header" becomes "cartridge:
// bad header".
package curated

import (
	"errors"
	"fmt"
	"strings"
)

type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error. The first argument is named pattern
// rather than format because it is the value tested by Is() and Has().
func Errorf(pattern string, values ...any) error {
	// formatting is left to the Error() function
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// Error implements the go language error interface.
func (er curated) Error() string {
	s := fmt.Errorf(er.pattern, er.values...).Error()

	p := strings.Split(s, ": ")
	n := make([]string, 0, len(p))
	for i := range p {
		if i > 0 && p[i] == p[i-1] {
			continue
		}
		n = append(n, p[i])
	}

	return strings.Join(n, ": ")
}

// Unwrap returns the first error value used to create the curated error. This
// allows the errors package to see through curated errors.
func (er curated) Unwrap() error {
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			return e
		}
	}
	return nil
}

// IsAny checks if the error is a curated error.
func IsAny(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(curated)
	return ok
}

// Is checks if error is a curated error with a specific pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}
	if er, ok := err.(curated); ok {
		return er.pattern == pattern
	}
	return false
}

// Has checks if error is a curated error with a specific pattern somewhere in
// the chain.
func Has(err error, pattern string) bool {
	for err != nil {
		if Is(err, pattern) {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
