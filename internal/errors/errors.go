package errors

import "fmt"

// Error kind constants
const (
	MalformedPlaybook    = "MALFORMED_PLAYBOOK"
	UnresolvedDependency = "UNRESOLVED_DEPENDENCY"
	APICall              = "API_CALL"
	IOWrite              = "IO_WRITE"
)

// RunError is a structured error carrying the failure taxonomy of a
// playbook run. Kind is always one of the constants above; Step and
// Status are only set where they apply.
type RunError struct {
	Kind    string `json:"kind"`
	Step    string `json:"step,omitempty"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func (e *RunError) Error() string {
	switch {
	case e.Step != "" && e.Status != 0:
		return fmt.Sprintf("[%s] step %s: HTTP %d: %s", e.Kind, e.Step, e.Status, e.Message)
	case e.Step != "":
		return fmt.Sprintf("[%s] step %s: %s", e.Kind, e.Step, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("[%s] HTTP %d: %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func NewMalformedPlaybook(msg, hint string) *RunError {
	return &RunError{Kind: MalformedPlaybook, Message: msg, Hint: hint}
}

func NewUnresolvedDependency(step, msg string) *RunError {
	return &RunError{Kind: UnresolvedDependency, Step: step, Message: msg}
}

func NewAPICall(step string, status int, msg string) *RunError {
	return &RunError{Kind: APICall, Step: step, Status: status, Message: msg}
}

func NewIOWrite(msg string) *RunError {
	return &RunError{Kind: IOWrite, Message: msg}
}

// IsKind reports whether err is a *RunError of the given kind.
func IsKind(err error, kind string) bool {
	re, ok := err.(*RunError)
	return ok && re.Kind == kind
}
