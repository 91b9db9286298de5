// Package server prepares and starts the Vein dedicated server process.
package server

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SatisfactoryServerManager/VeinLauncher/app/config"
	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/vars"
	"github.com/shirou/gopsutil/process"
)

func ExecutablePath(serverDir string) string {
	return filepath.Join(serverDir, vars.ExeName)
}

func IsInstalled(serverDir string) bool {
	return utils.CheckFileExists(ExecutablePath(serverDir))
}

func StartArgs(cfg *config.Config) []string {

	exeArgs := make([]string, 0)
	exeArgs = append(exeArgs, "-log")
	exeArgs = append(exeArgs, "-Port="+strconv.Itoa(cfg.GamePort))
	exeArgs = append(exeArgs, "-QueryPort="+strconv.Itoa(cfg.QueryPort))

	if cfg.Multihome != "" {
		exeArgs = append(exeArgs, "-multihome="+cfg.Multihome)
	}

	exeArgs = append(exeArgs, strings.Fields(cfg.ExtraArgs)...)

	return exeArgs
}

// FixSteamClient links steamcmd's 64-bit steamclient.so to where the server
// looks it up, <homeDir>/.steam/sdk64. An existing file or link there is
// replaced.
func FixSteamClient(steamDir, homeDir string) error {
	source := filepath.Join(steamDir, vars.SteamClientLibrary)
	sdkDir := filepath.Join(homeDir, vars.SteamSDKDir)
	target := filepath.Join(sdkDir, filepath.Base(source))

	if !utils.CheckFileExists(source) {
		utils.WarnLogger.Printf("Skipping steamclient.so link, %s does not exist", source)
		return nil
	}

	if err := utils.CreateFolder(sdkDir); err != nil {
		return apperrors.IO("create directory", sdkDir, err)
	}

	if current, err := os.Readlink(target); err == nil && current == source {
		return nil
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return apperrors.IO("remove", target, err)
	}

	if err := os.Symlink(source, target); err != nil {
		return apperrors.IO("symlink", target, err)
	}

	utils.InfoLogger.Printf("Linked %s -> %s", target, source)
	return nil
}

// FindRunningServer returns the pid of a running Vein server, or -1.
func FindRunningServer() int32 {

	utils.DebugLogger.Println("Getting process id for Vein Server")
	processes, err := process.Processes()
	if err != nil {
		utils.ErrorLogger.Printf("Error listing processes %s\r\n", err.Error())
		return -1
	}

	self := int32(os.Getpid())

	for _, p := range processes {
		if p.Pid == self {
			continue
		}

		name, err := p.Name()
		if err != nil {
			continue
		}

		if !strings.HasPrefix(strings.ToLower(name), vars.ProcessName) {
			continue
		}

		utils.DebugLogger.Printf("Found Vein Server PID: %d\r\n", p.Pid)
		return p.Pid
	}

	utils.DebugLogger.Println("Couldn't find process id, Server not running")
	return -1
}
