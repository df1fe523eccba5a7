// main is the entry point for the greencoder CLI.
package main

import (
	"github.com/unelmacoin/greencoder/cmd"
	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/internal/iocache"
)

func main() {
	defer iocache.CloseStores()

	// Commands resolve stores through the shared manager once setup ran.
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Could not stop profiling cleanly", profErr)
	}

	if err != nil {
		// LogFatal exits, so close stores explicitly before bailing.
		iocache.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
