package kitchen

import (
	"github.com/abhisek/codekitchen/internal/progression"
)

// startedMsg is sent once the controller has opened a session.
type startedMsg struct {
	View progression.View
	Err  error
}

// AcknowledgedMsg carries the controller's acknowledgment of a solved
// session. The app forwards every value read from
// progression.Controller.Acknowledgements as one of these.
type AcknowledgedMsg progression.Acknowledgement
