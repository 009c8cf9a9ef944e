// Package butter designs digital Butterworth filters in transfer-function
// form and applies them with zero-phase forward-backward filtering.
//
// Designs follow the analog prototype route: poles of the normalized
// lowpass prototype are frequency-transformed to the requested lowpass,
// highpass or bandpass response in the pre-warped analog domain and then
// mapped to the z-plane with the bilinear transform.
package butter
