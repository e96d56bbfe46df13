package ports

// WorkspaceLocator finds an attendpay workspace root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
