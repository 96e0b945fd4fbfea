/*
meshtools places, merges and skins triangle meshes described by a TOML job
file and writes the result as binary glTF.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/meshtools/engine"
	"github.com/spaghettifunk/meshtools/engine/config"
	"github.com/spaghettifunk/meshtools/engine/core"
)

func main() {
	configFile := flag.String("config", "", "Path to a TOML job file (default: cube and triangle merge)")
	mode := flag.String("mode", "", "Pipeline to run: combine or skin")
	output := flag.String("output", "", "Write the resulting mesh to this .glb file")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	watch := flag.Bool("watch", false, "Rerun whenever the job file or a model source changes")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			core.LogFatal(err.Error())
		}
	}
	flags := config.Flags{
		Mode:     *mode,
		Output:   *output,
		LogLevel: *logLevel,
		Workers:  *workers,
		Watch:    *watch,
	}
	cfg.Resolve(flags)

	e, err := engine.New(cfg, engine.WithFlags(flags))
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		core.LogInfo("shutting down")
		cancel()
	}()

	runErr := e.Run(ctx)
	cancel()
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
