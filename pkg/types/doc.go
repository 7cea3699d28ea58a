// Package types defines the data model shared by the savelink packages:
// game entries, recorded link operations, link mechanisms and the
// filesystem interface every service is written against.
package types
