package notify

import "galop-watch/utils"

// Deliver hands the assembled report to the notifier and reports whether
// delivery worked. A transport failure is logged and swallowed: extraction
// already succeeded by the time this runs, so the run must not turn fatal
// over an undeliverable email.
func Deliver(n Notifier, logger *utils.Logger, recipient, subject, body string) bool {
	if err := n.Send(subject, body); err != nil {
		logger.Warn("Report could not be emailed: %v", err)
		return false
	}
	logger.Info("Report emailed to %s", recipient)
	return true
}
