// Package utils provides small data structures shared across packages.
//
// BitSet is a fixed-size index set. The matcher uses it to track which lines
// of the second block have already been paired:
//
//	consumed := utils.NewBitSet(len(b))
//	consumed.Add(3)
//	for _, j := range consumed.Missing() {
//	    fmt.Println("unpaired:", b[j])
//	}
package utils
