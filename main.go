package main

import (
	"github.com/flanksource/commons/logger"
	"github.com/flanksource/ftg-affect/cmd"
	"github.com/google/gops/agent"
)

func main() {
	// Start gops agent for runtime debugging; a large snapshot pair can push
	// the affect analyzer's memo caches into the tens of thousands of
	// entries, and gops lets an operator attach and inspect heap/goroutine
	// state on a long-running comparison without restarting it.
	if err := agent.Listen(agent.Options{
		ShutdownCleanup: true,
	}); err != nil {
		logger.Warnf("failed to start gops agent: %v", err)
	}
	defer agent.Close()

	cmd.Execute()
}
