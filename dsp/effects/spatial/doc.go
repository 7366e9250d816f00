// Package spatial provides real-time stereo image processors.
//
// Included processors:
//   - StereoField: Mid/side rescaling in Width or Mid/Side mode with
//     per-sample ramped controls.
//   - BassMono: Linkwitz-Riley split that folds the low band to mono and
//     leaves the highs untouched, with a low-band listening mode.
//   - Panner: sin3dB equal-power panning with block-ramped gains.
package spatial
