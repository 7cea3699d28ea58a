// Package filesystem provides the OS implementation of types.FS and the
// tree-level helpers built on top of it: recursive copy, move with a
// copy fallback across devices, and hidden-file marking.
package filesystem
