// Package param defines the utility processor's parameters and a lock-free
// store for their current values.
//
// Every parameter is a plain float64 held in an atomic uint64, so a control
// thread can write while the audio thread reads without locks. Reads of
// different parameters are independent: a block may see one parameter's new
// value alongside another's old one.
package param
