// Command lighting opens the Phong lighting sandbox: three textured
// primitives lit by orbiting point lights, a directional light and a spot
// light, with ImGui panels for every parameter.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"lighting-sandbox/internal/logger"
)

func main() {
	if err := logger.Init(logger.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		logger.Log.Error("Startup failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run() error {
	a, err := newApp(logger.Log)
	if err != nil {
		return err
	}
	defer a.Close()

	logger.Log.Info("Sandbox ready",
		zap.String("controls", "WASD/QE move, right mouse toggles look, 1 wireframe, R reset, Esc quit"))
	a.Run()
	return nil
}
