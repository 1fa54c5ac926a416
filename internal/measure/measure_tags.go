////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package measure

// measure_tags.go contains the string constants for our measure tags

// Constants for Tag strings used by Measure(). Each tag is measured twice,
// once when the stage starts and once when it ends.
const (
	TagCounterStress   = "Counter Stress"
	TagPartitionStress = "Partition Stress"
	TagVerification    = "Verification"
)
