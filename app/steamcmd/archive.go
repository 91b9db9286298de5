package steamcmd

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SatisfactoryServerManager/VeinLauncher/app/utils"
)

// ExtractArchive unpacks the steamcmd tarball read from r into SteamDir.
func ExtractArchive(r io.Reader) error {

	utils.InfoLogger.Println("Extracting Steam CMD...")

	gzr, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	root := filepath.Clean(SteamDir) + string(os.PathSeparator)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		target := filepath.Join(SteamDir, header.Name)
		if !strings.HasPrefix(target, root) {
			return fmt.Errorf("invalid file path in archive: %s", header.Name)
		}

		switch header.Typeflag {

		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}

		case tar.TypeReg:
			if err := utils.CreateFolder(filepath.Dir(target)); err != nil {
				return err
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode).Perm())
			if err != nil {
				return err
			}

			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return err
			}

			// close each file as we go, deferring would hold every file open
			if err := f.Close(); err != nil {
				return err
			}
		}
	}

	utils.InfoLogger.Println("Extracted Steam CMD")

	return nil
}
