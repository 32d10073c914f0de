package eval

import "fmt"

// ClosurePolicy decides what a function value keeps of the scopes
// around its declaration.
type ClosurePolicy uint8

const (
	// Shared closures hold on to the live scopes; assignments made
	// after the function was created are visible to it.
	Shared ClosurePolicy = iota
	// Snapshot closures copy the local scopes at creation time.
	Snapshot
)

func (p ClosurePolicy) String() string {
	switch p {
	case Shared:
		return "shared"
	case Snapshot:
		return "snapshot"
	}
	return fmt.Sprintf("ClosurePolicy(%d)", uint8(p))
}

// ParseClosurePolicy accepts the names printed by String; the
// empty string selects Shared.
func ParseClosurePolicy(s string) (ClosurePolicy, error) {
	switch s {
	case "", "shared":
		return Shared, nil
	case "snapshot":
		return Snapshot, nil
	}
	return Shared, fmt.Errorf("unknown closure policy %q", s)
}
