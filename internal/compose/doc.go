// Package compose implements the two compositing strategies that turn a
// (base, background) pair into one output image.
//
// Both strategies are variants of the Compositor interface and are selected
// per background by its catalog entry's composite mode: Center frames the
// base on a slightly larger background, Embedded fits it into a declared
// transparent cutout region. Compositors are pure with respect to the
// filesystem; decoding inputs and encoding the result belong to the caller.
package compose
