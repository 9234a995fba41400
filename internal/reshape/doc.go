// Package reshape converts the multi-level working table into the flat
// presentation shape handed to the output sink.
//
// Reshaping covers three concerns: header packing (collapsing the 3-part
// column keys into single compound labels, or keeping them as separate
// header rows, or suppressing them), index packing (collapsing the label
// axes into one compound column), and the glm unit-system transform, which
// substitutes display units uniformly across each metric's columns.
//
// The unit transform is order-sensitive state: it may run at most once per
// invocation and only before any packing mode has been chosen, and it
// forces the index into packed form as a side effect.
package reshape
