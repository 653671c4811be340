// Command aem scores nonprofit effectiveness from financial disclosures.
package main

import (
	"github.com/huangsam/aem/cmd"
	"github.com/huangsam/aem/internal/contract"
)

func main() {
	defer cmd.SyncLogger()
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("Cannot stop profiling", err)
	}
}
