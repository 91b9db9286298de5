package utils

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	DebugLogger = log.New(io.Discard, "[ DEBUG ] ", log.Ldate|log.Ltime)
	InfoLogger  = log.New(os.Stdout, "[ INFO ] ", log.Ldate|log.Ltime)
	WarnLogger  = log.New(os.Stdout, "[ WARN ] ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(os.Stderr, "[ ERROR ] ", log.Ldate|log.Ltime)
	SteamLogger = log.New(os.Stdout, "[ STEAM ] ", log.Ldate|log.Ltime)
)

func CreateFolder(folderPath string) error {
	if _, err := os.Stat(folderPath); errors.Is(err, os.ErrNotExist) {
		err := os.MkdirAll(folderPath, os.ModePerm)
		if err != nil {
			return err
		}
	}
	return nil
}

func CheckFileExists(filepath string) bool {
	_, err := os.Stat(filepath)
	return !os.IsNotExist(err)
}

// TouchFile creates an empty file at filePath if nothing exists there yet.
func TouchFile(filePath string) error {
	if CheckFileExists(filePath) {
		return nil
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return file.Close()
}

// SetupLoggers points the loggers at stdout/stderr and, when logDir is set,
// also at a fresh set of log files inside it.
func SetupLoggers(logDir string, debug bool) error {
	var (
		wrt      io.Writer = os.Stdout
		errorwrt io.Writer = os.Stderr
		steamwrt io.Writer = os.Stdout
	)

	if logDir != "" {
		if err := CreateFolder(logDir); err != nil {
			return err
		}

		logFile := filepath.Join(logDir, "VeinLauncher-combined.log")
		errorlogFile := filepath.Join(logDir, "VeinLauncher-error.log")
		steamlogFile := filepath.Join(logDir, "VeinLauncher-steam.log")

		f, err := openFresh(logFile)
		if err != nil {
			return err
		}
		errorf, err := openFresh(errorlogFile)
		if err != nil {
			return err
		}
		steamf, err := openFresh(steamlogFile)
		if err != nil {
			return err
		}

		wrt = io.MultiWriter(os.Stdout, f)
		errorwrt = io.MultiWriter(os.Stderr, f, errorf)
		steamwrt = io.MultiWriter(wrt, steamf)
	}

	log.SetOutput(wrt)

	debugwrt := io.Discard
	if debug {
		debugwrt = wrt
	}

	DebugLogger = log.New(debugwrt, "[ DEBUG ] ", log.Ldate|log.Ltime)
	InfoLogger = log.New(wrt, "[ INFO ] ", log.Ldate|log.Ltime)
	WarnLogger = log.New(wrt, "[ WARN ] ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(errorwrt, "[ ERROR ] ", log.Ldate|log.Ltime)
	SteamLogger = log.New(steamwrt, "[ STEAM ] ", log.Ldate|log.Ltime)

	if logDir != "" {
		InfoLogger.Printf("Log Directory: %s", logDir)
	}
	return nil
}

func openFresh(logFile string) (*os.File, error) {
	if CheckFileExists(logFile) {
		os.Remove(logFile)
	}
	return os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
}
