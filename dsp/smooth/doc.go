// Package smooth provides per-sample parameter ramps that remove zipper
// noise when a control value changes while audio is running.
//
// [Linear] moves from its current value to a target in a fixed number of
// samples and lands exactly on the target.
package smooth
