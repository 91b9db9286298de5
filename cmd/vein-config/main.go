// Command vein-config writes Game.ini and Engine.ini under CONFIG_PATH from
// the current environment and prints their paths.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/SatisfactoryServerManager/VeinLauncher/app/config"
	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/materializer"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
)

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(stdout io.Writer) error {
	// stdout carries only the file paths
	utils.InfoLogger.SetOutput(os.Stderr)
	utils.WarnLogger.SetOutput(os.Stderr)

	envFile := config.DefaultEnvFile
	if v, ok := os.LookupEnv("ENV_FILE"); ok {
		envFile = v
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	m, err := materializer.New(cfg.ConfigPath)
	if err != nil {
		return err
	}

	result, err := m.Apply(materializer.Environ(os.Environ()))
	if err != nil {
		return err
	}

	for _, path := range result.Files {
		fmt.Fprintln(stdout, path)
	}
	return nil
}
