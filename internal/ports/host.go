package ports

// Host exposes process-level facts about the machine being provisioned.
type Host interface {
	// EUID returns the effective user id of the current process.
	EUID() int

	// LookPath searches PATH for an executable.
	LookPath(name string) (string, error)

	// Getenv returns the value of an environment variable.
	Getenv(key string) string

	// HomeDir returns the current user's home directory.
	HomeDir() (string, error)
}
