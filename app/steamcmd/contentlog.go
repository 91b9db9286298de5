package steamcmd

import (
	"io"
	"path/filepath"

	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
	"github.com/SatisfactoryServerManager/VeinLauncher/app/vars"
	"github.com/hpcloud/tail"
)

// followContentLog relays lines appended to steamcmd's content log, which
// carries the download progress that steamcmd does not print itself.
func followContentLog() *tail.Tail {
	logFile := filepath.Join(SteamDir, vars.ContentLogFile)

	t, err := tail.TailFile(logFile, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Poll:      true,
		Logger:    tail.DiscardingLogger,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		utils.WarnLogger.Printf("Error following %s: %v", logFile, err)
		return nil
	}

	go func() {
		for line := range t.Lines {
			if line.Err != nil {
				utils.DebugLogger.Printf("Error reading line from %s: %v", logFile, line.Err)
				continue
			}
			utils.SteamLogger.Println(line.Text)
		}
	}()

	return t
}

func stopFollowing(t *tail.Tail) {
	if t == nil {
		return
	}

	utils.DebugLogger.Printf("Stopping tail for %s", t.Filename)
	if err := t.Stop(); err != nil {
		utils.DebugLogger.Printf("Tail for %s stopped with: %v", t.Filename, err)
	}
	t.Cleanup()
}
