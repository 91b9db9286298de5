package vars

var (
	// Vein
	ExeName = "VeinServer.sh"
	// matches the start script and the shipping binary (truncated to
	// 15 characters by the kernel)
	ProcessName = "veinserver"

	// Steam
	DownloadURL        = "https://steamcdn-a.akamaihd.net/client/installer/steamcmd_linux.tar.gz"
	SteamExeName       = "steamcmd.sh"
	Extension          = "tar.gz"
	ContentLogFile     = "logs/content_log.txt"
	SteamClientLibrary = "linux64/steamclient.so"
	SteamSDKDir        = ".steam/sdk64"
)
