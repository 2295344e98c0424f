// Package filesystem provides an OutputStore that writes generated Go files
// beneath the manifest's output directory.
//
// Writes are atomic: data goes to a temporary file in the target directory
// which is then renamed over the destination, so an interrupted run never
// leaves a half-written file for the Go toolchain to trip over.
package filesystem
