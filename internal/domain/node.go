package domain

// Node states the CLI takes decisions on. Everything else the server may
// report is carried through opaquely.
const (
	StateDeploying = "Deploying"
	StateDeployed  = "Deployed"
	StateReleasing = "Releasing"
	StateReady     = "Ready"
)

// Node is a machine managed by the remote server, identified by its
// system ID.
type Node struct {
	SystemID     string
	Hostname     string
	Architecture string
	CPUs         int
	Memory       float64
	Status       string
	Owner        string
	Tags         []string
}

// AcquireConstraints narrows which node an acquire request may match.
// Zero values mean "no constraint".
type AcquireConstraints struct {
	Hostname     string
	Architecture string
	CPUs         int
	Memory       float64
	Tags         []string
}

type Tag struct {
	Name       string
	Definition string
	Comment    string
}

type File struct {
	Filename string
	AnonURI  string
}

type User struct {
	Username string
	Email    string
	IsAdmin  bool
}
