/*
The testbed application: loads the engine configuration and runs the demo
game until the window closes or the process is interrupted.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/spaghettifunk/idraw/engine"
	"github.com/spaghettifunk/idraw/engine/core"
	"github.com/spaghettifunk/idraw/testbed"
)

func main() {
	configPath := pflag.StringP("config", "c", "anima.toml", "path to the engine configuration")
	pflag.Parse()

	tb := testbed.NewTestGame()

	e, err := engine.NewApplication(*configPath, tb.Game)
	if err != nil {
		core.LogFatal("failed to start: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		e.Stop()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
