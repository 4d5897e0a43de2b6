package texture

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions are the input formats the decoder can handle
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".svg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// ImageExtensions returns a copy of the recognized input extensions, dot included
func ImageExtensions() []string {
	exts := make([]string, len(imageExtensions))
	copy(exts, imageExtensions)
	return exts
}

// IsImageFile checks if the given file extension is one of known image file extensions
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	for _, v := range imageExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// FindImageFilesRecursively scans a directory for convertible image files
func FindImageFilesRecursively(directory string) ([]string, error) {
	var files []string
	var err error

	// Use fd if available for better performance, otherwise fall back to filepath.WalkDir
	if isFdAvailable() {
		files, err = findImageFilesWithFd(directory)
		if err != nil {
			files, err = findImageFilesWithWalkDir(directory)
		}
	} else {
		files, err = findImageFilesWithWalkDir(directory)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ExpandPaths expands any directory arguments into lists of image files.
// Plain files are kept as given, whatever their extension.
func ExpandPaths(paths []string) ([]string, error) {
	var expanded []string

	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if fi.IsDir() {
			imageFiles, err := FindImageFilesRecursively(path)
			if err != nil {
				return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
			}
			expanded = append(expanded, imageFiles...)
		} else {
			expanded = append(expanded, path)
		}
	}

	return expanded, nil
}

// isFdAvailable checks if the 'fd' command is available in PATH
func isFdAvailable() bool {
	_, err := exec.LookPath("fd")
	return err == nil
}

// findImageFilesWithWalkDir uses filepath.WalkDir to find image files (fallback method)
func findImageFilesWithWalkDir(directory string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if IsImageFile(path) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// findImageFilesWithFd uses the 'fd' command to find image files
func findImageFilesWithFd(directory string) ([]string, error) {
	args := []string{"--type", "f", "--ignore-case", "--no-ignore", "--hidden"}
	for _, ext := range imageExtensions {
		args = append(args, "--extension", strings.TrimPrefix(ext, "."))
	}
	args = append(args, ".", directory)

	output, err := exec.Command("fd", args...).Output()
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" && IsImageFile(line) {
			files = append(files, line)
		}
	}

	return files, nil
}
