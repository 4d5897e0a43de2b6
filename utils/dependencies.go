package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// ValidateTexconv checks that the texconv executable can be resolved.
// tool may be a bare name looked up in PATH or a path to the executable.
func ValidateTexconv(tool string) (string, error) {
	if tool == "" {
		tool = "texconv"
	}

	path, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%s not found. %s", tool, getInstallationInstructions())
	}

	return path, nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "windows":
		return "Download texconv.exe from https://github.com/microsoft/DirectXTex/releases and place it next to the application or in PATH"
	case "darwin", "linux":
		return "Build texconv from https://github.com/microsoft/DirectXTex or run texconv.exe through Wine, then set --texconv to its path"
	default:
		return "Download from https://github.com/microsoft/DirectXTex/releases"
	}
}
