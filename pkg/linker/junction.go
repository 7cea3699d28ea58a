package linker

// Junctioner performs directory-junction operations. The default
// implementation shells out to mklink on Windows and is unsupported
// elsewhere; tests substitute their own.
type Junctioner interface {
	Create(link, target string) error
	IsJunction(path string) bool
	Target(path string) (string, error)
	Remove(path string) error
}
