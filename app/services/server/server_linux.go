//go:build linux

package server

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/SatisfactoryServerManager/VeinLauncher/app/config"
	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
)

// DropPrivileges hands dirs over to PUID:PGID and switches the process to
// that user. It does nothing unless running as root with a non-root PUID.
func DropPrivileges(cfg *config.Config, dirs ...string) error {
	if os.Geteuid() != 0 {
		utils.DebugLogger.Printf("Not running as root, keeping uid %d", os.Geteuid())
		return nil
	}

	if cfg.PUID == 0 {
		utils.WarnLogger.Println("PUID is 0, the server will run as root")
		return nil
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := utils.CreateFolder(dir); err != nil {
			return apperrors.IO("create directory", dir, err)
		}
		if err := chownTree(dir, cfg.PUID, cfg.PGID); err != nil {
			return err
		}
	}

	if err := syscall.Setgroups([]int{}); err != nil {
		return fmt.Errorf("setgroups: %w", err)
	}
	if err := syscall.Setgid(cfg.PGID); err != nil {
		return fmt.Errorf("setgid %d: %w", cfg.PGID, err)
	}
	if err := syscall.Setuid(cfg.PUID); err != nil {
		return fmt.Errorf("setuid %d: %w", cfg.PUID, err)
	}

	if u, err := user.LookupId(strconv.Itoa(cfg.PUID)); err == nil {
		os.Setenv("HOME", u.HomeDir)
		os.Setenv("USER", u.Username)
	}

	utils.InfoLogger.Printf("Running as uid %d gid %d", cfg.PUID, cfg.PGID)
	return nil
}

func chownTree(root string, uid, gid int) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return apperrors.IO("walk", path, err)
		}
		if err := os.Lchown(path, uid, gid); err != nil {
			return apperrors.IO("chown", path, err)
		}
		return nil
	})
}

// Exec replaces the launcher with the Vein server. It only returns on
// failure.
func Exec(cfg *config.Config) error {
	serverExe := ExecutablePath(cfg.ServerDir)

	if !IsInstalled(cfg.ServerDir) {
		return apperrors.MissingDependency(fmt.Sprintf("server executable %s not found", serverExe), nil)
	}

	exeArgs := append([]string{serverExe}, StartArgs(cfg)...)

	utils.InfoLogger.Printf("Starting Vein Server: %v", exeArgs)

	if err := os.Chdir(cfg.ServerDir); err != nil {
		return apperrors.IO("chdir", cfg.ServerDir, err)
	}

	if err := syscall.Exec(serverExe, exeArgs, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", serverExe, err)
	}

	return nil
}
