package steamcmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	apperrors "github.com/SatisfactoryServerManager/VeinLauncher/app/errors"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/vars"
)

var (
	SteamDir = ""
)

type InstallOptions struct {
	InstallDir     string
	AppID          int
	Branch         string
	BranchPassword string
	Validate       bool
}

// Preflight fails when steamcmd is absent from dir and may not be
// downloaded. It does not touch the filesystem.
func Preflight(dir string, autoDownload bool) error {
	if autoDownload || utils.CheckFileExists(filepath.Join(dir, vars.SteamExeName)) {
		return nil
	}
	return apperrors.MissingDependency(fmt.Sprintf("%s not found in %s and STEAMCMD_AUTO_DOWNLOAD is disabled", vars.SteamExeName, dir), nil)
}

// InitSteamCMD makes sure steamcmd is present in dir, downloading it when
// allowed.
func InitSteamCMD(dir string, autoDownload bool) error {
	SteamDir = dir

	if IsInstalled() {
		utils.DebugLogger.Printf("Found Steam CMD in %s", SteamDir)
		return nil
	}

	if err := Preflight(dir, autoDownload); err != nil {
		return err
	}

	if err := utils.CreateFolder(SteamDir); err != nil {
		return apperrors.IO("create directory", SteamDir, err)
	}

	if err := DownloadSteamCMD(); err != nil {
		return apperrors.MissingDependency("could not download steamcmd", err)
	}

	if !IsInstalled() {
		return apperrors.MissingDependency(fmt.Sprintf("%s missing after extracting steamcmd", vars.SteamExeName), nil)
	}

	utils.InfoLogger.Println("Steam CMD is installed")
	return nil
}

func DownloadSteamCMD() error {
	file, err := os.CreateTemp(os.TempDir(), "vein_steamcmd_*."+vars.Extension)
	if err != nil {
		return err
	}
	defer os.Remove(file.Name())
	defer file.Close()

	utils.InfoLogger.Printf("Downloading Steam CMD to: %s\r\n", file.Name())

	resp, err := http.Get(vars.DownloadURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %s", resp.Status)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		return err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	return ExtractArchive(file)
}

func IsInstalled() bool {
	steamExe := filepath.Join(SteamDir, vars.SteamExeName)
	_, err := os.Stat(steamExe)
	return !os.IsNotExist(err)
}

// InstallCommands returns the steamcmd commands that install or update the
// server described by opts.
func InstallCommands(opts InstallOptions) []string {
	update := fmt.Sprintf("app_update %d", opts.AppID)

	if opts.Branch != "" && opts.Branch != "public" {
		update += " -beta " + opts.Branch
		if opts.BranchPassword != "" {
			update += " -betapassword " + opts.BranchPassword
		}
	}

	if opts.Validate {
		update += " validate"
	}

	return []string{update}
}

func BuildScriptFile(installDir string, commands []string) (string, error) {

	allCommands := make([]string, 0)

	allCommands = append(allCommands, "@ShutdownOnFailedCommand 1")
	allCommands = append(allCommands, "@NoPromptForPassword 1")
	if installDir != "" {
		// must come before login
		allCommands = append(allCommands, "force_install_dir "+installDir)
	}
	allCommands = append(allCommands, "login anonymous")
	allCommands = append(allCommands, commands...)
	allCommands = append(allCommands, "quit")

	file, err := os.CreateTemp(os.TempDir(), "vein_steamcmd_*.txt")
	if err != nil {
		return "", err
	}

	datawriter := bufio.NewWriter(file)

	for _, data := range allCommands {
		_, _ = datawriter.WriteString(data + "\n")
	}

	if err := datawriter.Flush(); err != nil {
		file.Close()
		return "", err
	}

	if err := file.Close(); err != nil {
		return "", err
	}

	return file.Name(), nil
}

// Run executes steamcmd with commands inside installDir. Output and the
// steamcmd content log are relayed to the steam logger while it runs.
func Run(ctx context.Context, installDir string, commands []string) error {
	steamExe := filepath.Join(SteamDir, vars.SteamExeName)

	scriptFile, err := BuildScriptFile(installDir, commands)
	if err != nil {
		return err
	}
	defer os.Remove(scriptFile)

	cmd := exec.CommandContext(ctx, steamExe, "+runscript", scriptFile)
	cmd.Dir = SteamDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	follower := followContentLog()
	defer stopFollowing(follower)

	if err := cmd.Start(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line != "" {
			utils.SteamLogger.Println(line)
		}
	}

	if err := cmd.Wait(); err != nil {
		// steamcmd exits with 7 after a successful run on some platforms
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 7 {
			return nil
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("steamcmd failed: %w: %s", err, msg)
		}
		return fmt.Errorf("steamcmd failed: %w", err)
	}

	return nil
}

func InstallServer(ctx context.Context, opts InstallOptions) error {
	if err := utils.CreateFolder(opts.InstallDir); err != nil {
		return apperrors.IO("create directory", opts.InstallDir, err)
	}

	utils.InfoLogger.Printf("Installing/Updating Vein Server (app %d, branch %s)..", opts.AppID, opts.Branch)

	if err := Run(ctx, opts.InstallDir, InstallCommands(opts)); err != nil {
		return err
	}

	utils.InfoLogger.Println("Vein Server is up to date")
	return nil
}
