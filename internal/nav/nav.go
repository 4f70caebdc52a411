// ABOUTME: Navigation actions returned by operations that leave the current view
// ABOUTME: Callers execute the action instead of continuing their own flow

package nav

import "fmt"

// Kind identifies how a navigation is carried out
type Kind int

const (
	// Push moves to a view inside the running client, keeping in-memory state
	Push Kind = iota
	// Reload moves to a view after re-reading all state from storage
	Reload
	// External hands control to a URL outside the client
	External
)

// Root is the home view of the client
const Root = "/"

// Action is a terminal instruction. Once an operation returns one, the
// caller must perform it and stop.
type Action struct {
	Kind   Kind
	Target string
}

// PushTo returns an in-client navigation to target
func PushTo(target string) Action {
	return Action{Kind: Push, Target: target}
}

// ReloadTo returns a full navigation to target
func ReloadTo(target string) Action {
	return Action{Kind: Reload, Target: target}
}

// ExternalTo returns a navigation that leaves the client for url
func ExternalTo(url string) Action {
	return Action{Kind: External, Target: url}
}

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case Push:
		return "push"
	case Reload:
		return "reload"
	case External:
		return "external"
	default:
		return "unknown"
	}
}

func (a Action) String() string {
	return fmt.Sprintf("%s %s", a.Kind, a.Target)
}
