package service_test

import (
	"testing"

	"github.com/atria-go/atria/service"
)

// In a non-interactive test harness the manager stays dormant; these
// tests verify Start/Add/Finish never panic regardless.
func TestProgressManagerLifecycleDoesNotPanic(t *testing.T) {
	pm := service.NewProgressManager()
	pm.Start(10)
	pm.Add(3)
	pm.Add(7)
	pm.Finish()
}

func TestProgressManagerFinishWithoutStartIsSafe(t *testing.T) {
	pm := service.NewProgressManager()
	pm.Finish()
}
