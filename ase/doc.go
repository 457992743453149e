// Package ase decodes Aseprite sprite files (.ase and .aseprite).
//
// The whole file is expected in memory. Decode walks the 128-byte header,
// then every frame and every chunk inside it, and returns a read-only
// Document. Chunk types this package does not know about are skipped using
// the size each chunk declares for itself, and reported as a Diagnostic
// instead of failing the decode.
//
// Only decoding is implemented. Nothing in this package composites layers
// into a final picture; see package celimage for converting a single cel.
package ase
