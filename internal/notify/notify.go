package notify

import (
	"fmt"
	"log"
	"os/exec"

	"github.com/sencheck/sencheck/internal/transcript"
)

type Notifier interface {
	DetectionFinished(id transcript.TurnID, ok bool, errorCount int)
	CorrectionApplied(id transcript.TurnID, errorText, replacement string)
	Error(msg string)
}

type Desktop struct{}

func (Desktop) DetectionFinished(id transcript.TurnID, ok bool, errorCount int) {
	var body string
	switch {
	case !ok:
		body = fmt.Sprintf("Sencheck: could not check sentence #%d", id)
	case errorCount == 0:
		body = fmt.Sprintf("Sencheck: sentence #%d looks good", id)
	default:
		body = fmt.Sprintf("Sencheck: sentence #%d has %d possible errors", id, errorCount)
	}
	send(body, false)
}

func (Desktop) CorrectionApplied(id transcript.TurnID, errorText, replacement string) {
	send(fmt.Sprintf("Sencheck: %q corrected to %q", errorText, replacement), false)
}

func (Desktop) Error(msg string) {
	send(msg, true)
}

func send(body string, critical bool) {
	args := []string{"-a", "Sencheck"}
	if critical {
		args = append(args, "-u", "critical")
	}
	args = append(args, body)
	if err := exec.Command("notify-send", args...).Run(); err != nil {
		log.Printf("Failed to send notification: %v", err)
	}
}

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) DetectionFinished(id transcript.TurnID, ok bool, errorCount int)       {}
func (Nop) CorrectionApplied(id transcript.TurnID, errorText, replacement string) {}
func (Nop) Error(msg string)                                                      {}
