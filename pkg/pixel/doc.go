// Package pixel normalizes raw pixel buffers into the canonical float RGB form
// used by the analyzer.
//
// A buffer is described by its sample type (see Sample and SampleKind), its
// channel layout (Format) and its dimensions. ToCanonical validates the buffer
// and produces a CanonicalImage whose channels are in [0,1]; Brightness reduces
// that image to a row-major BrightnessGrid of perceptual luminance values.
package pixel
