package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SatisfactoryServerManager/VeinLauncher/app/config"
	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/materializer"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/services/server"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/steamcmd"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
)

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func main() {
	envFile := flag.String("env-file", config.DefaultEnvFile, "Optional dotenv file merged into the environment")
	configureOnly := flag.Bool("configure-only", false, "Write Game.ini and Engine.ini and exit without starting the server")

	flag.Parse()

	if !isFlagPassed("env-file") {
		if v, ok := os.LookupEnv("ENV_FILE"); ok {
			*envFile = v
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *envFile, *configureOnly); err != nil {
		utils.ErrorLogger.Println(err)
		stop()
		os.Exit(apperrors.ExitCode(err))
	}
}

func run(ctx context.Context, envFile string, configureOnly bool) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	// Checked before anything is written to disk.
	if cfg.UpdateOnStart && !configureOnly {
		if err := steamcmd.Preflight(cfg.SteamCMDDir, cfg.SteamCMDDownload); err != nil {
			return err
		}
	}

	if err := utils.SetupLoggers(cfg.LogDir, cfg.Debug); err != nil {
		return apperrors.IO("setup loggers", cfg.LogDir, err)
	}

	utils.InfoLogger.Println("Starting Vein Launcher..")

	if err := server.DropPrivileges(cfg, cfg.ConfigPath, cfg.ServerDir, cfg.SteamCMDDir, cfg.LogDir); err != nil {
		return err
	}

	m, err := materializer.New(cfg.ConfigPath)
	if err != nil {
		return err
	}
	if _, err := m.Apply(materializer.Environ(os.Environ())); err != nil {
		return err
	}

	if configureOnly {
		return nil
	}

	if cfg.UpdateOnStart {
		if err := steamcmd.InitSteamCMD(cfg.SteamCMDDir, cfg.SteamCMDDownload); err != nil {
			return err
		}

		err := steamcmd.InstallServer(ctx, steamcmd.InstallOptions{
			InstallDir:     cfg.ServerDir,
			AppID:          cfg.SteamAppID,
			Branch:         cfg.SteamBranch,
			BranchPassword: cfg.SteamBranchPassword,
			Validate:       cfg.SteamValidate,
		})
		if err != nil {
			return err
		}
	} else {
		utils.InfoLogger.Println("UPDATE_ON_START is disabled, skipping server update")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted before server start: %w", err)
	}

	if home, err := os.UserHomeDir(); err == nil {
		if err := server.FixSteamClient(cfg.SteamCMDDir, home); err != nil {
			return err
		}
	} else {
		utils.WarnLogger.Printf("Skipping steamclient.so link: %s", err)
	}

	if pid := server.FindRunningServer(); pid != -1 {
		return fmt.Errorf("vein server is already running with pid %d", pid)
	}

	settings, err := config.LoadServerSettings(cfg.ConfigPath)
	if err != nil {
		utils.WarnLogger.Printf("Could not read back server settings: %s", err)
	} else {
		utils.InfoLogger.Printf("Server settings:\n%s", settings.Summary())
	}

	return server.Exec(cfg)
}
