package config

import (
	"fmt"
	os2 "os"
	"os/user"
	"strings"

	"github.com/cometbft/cometbft/libs/os"

	"github.com/tessellated-io/signet/log"
)

// ReadFile resolves a config file from a short path (ex. ~/.signet/config.yml => /home/tessellated/.signet/config.yml)
// and returns its expanded location.
func ReadFile(configFile string) (string, error) {
	expandedConfigFile := ExpandHomeDir(configFile)
	configOk := os.FileExists(expandedConfigFile)
	if !configOk {
		return "", fmt.Errorf("failed to load config file at: %s", configFile)
	}
	return expandedConfigFile, nil
}

// ReadFileContents reads a file from a short path.
func ReadFileContents(file string) ([]byte, error) {
	expanded, err := ReadFile(file)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(expanded)
}

func CreateDirectoryIfNeeded(configurationDirectory string, logger *log.Logger) error {
	expanded := ExpandHomeDir(configurationDirectory)
	exists, err := folderExists(expanded)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	err = os2.MkdirAll(expanded, 0o755)
	if err != nil {
		return err
	}

	logger.Info("created configuration directory", "configuration_dir", configurationDirectory)

	return nil
}

// SafeWrite writes a file unless it already exists.
func SafeWrite(file string, contents []byte, logger *log.Logger) error {
	return safeWrite(file, contents, 0o644, logger)
}

// SafeWriteSecret is SafeWrite for files only the owner may read, ex. a serialized wallet.
func SafeWriteSecret(file string, contents []byte, logger *log.Logger) error {
	return safeWrite(file, contents, 0o600, logger)
}

func safeWrite(file string, contents []byte, mode os2.FileMode, logger *log.Logger) error {
	expanded := ExpandHomeDir(file)
	if os.FileExists(expanded) {
		logger.Warn("skipping overwriting existing file", "file", expanded)
		return nil
	}

	err := os.WriteFile(expanded, contents, mode)
	if err != nil {
		return err
	}
	logger.Info("wrote file", "file", expanded)
	return nil
}

func ExpandHomeDir(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	usr, err := user.Current()
	if err != nil {
		panic(fmt.Errorf("failed to get user's home directory: %v", err))
	}
	return strings.Replace(path, "~", usr.HomeDir, 1)
}

func FileExists(filePath string) bool {
	expanded := ExpandHomeDir(filePath)
	return os.FileExists(expanded)
}

func folderExists(folderPath string) (bool, error) {
	fileInfo, err := os2.Stat(folderPath)
	if err != nil {
		if os2.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return fileInfo.IsDir(), nil
}
