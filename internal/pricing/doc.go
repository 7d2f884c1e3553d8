// Package pricing computes burger totals and itemized line lists.
//
// Everything here is pure: no storage, no logging. Callers recompute a
// quote after every change to a selection instead of caching totals.
package pricing
