////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package services

import "iter"

// Dispenser is a pull based source of work shared by any number of
// goroutines. Next returns false once the source is exhausted.
type Dispenser[V any] interface {
	Next() (V, bool)
}

// Sequence adapts a Dispenser into a lazy sequence. The sequence holds no
// state of its own: ranging over it pulls from d, so two sequences over the
// same dispenser split its values between them, and ranging over a sequence
// a second time only yields what is left.
func Sequence[V any](d Dispenser[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for {
			v, ok := d.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Drain pulls from d until it is exhausted and returns everything this
// caller received.
func Drain[V any](d Dispenser[V]) []V {
	var out []V
	for v := range Sequence(d) {
		out = append(out, v)
	}
	return out
}
