package texture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultTool is the texconv executable looked up in PATH
const DefaultTool = "texconv"

// CommandFunc runs an external program and returns its combined output
type CommandFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Converter turns image files into DDS textures by driving texconv
type Converter struct {
	Tool string      // executable name or path, DefaultTool when empty
	Exec CommandFunc // process runner, os/exec when nil
}

// NewConverter returns a Converter using the given texconv executable
func NewConverter(tool string) *Converter {
	return &Converter{Tool: tool}
}

func (c *Converter) tool() string {
	if c.Tool == "" {
		return DefaultTool
	}
	return c.Tool
}

func (c *Converter) exec(ctx context.Context, args ...string) ([]byte, error) {
	if c.Exec != nil {
		return c.Exec(ctx, c.tool(), args...)
	}
	return exec.CommandContext(ctx, c.tool(), args...).CombinedOutput()
}

// TexconvArgs builds the texconv command line for one intermediate bitmap
func TexconvArgs(format Format, outputDir, input string) []string {
	return []string{"-y", "-f", string(format), "-o", outputDir, input}
}

// OutputPath returns the final .dds location for an input file
func OutputPath(input, outputDir string) string {
	base := filepath.Base(input)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+".dds")
}

// ConvertFile converts a single image to DDS and returns the final output path.
// Every error is wrapped with the source path.
func (c *Converter) ConvertFile(ctx context.Context, input, outputDir string, format Format) (string, error) {
	output, err := c.convertFile(ctx, input, outputDir, format)
	if err != nil {
		return "", fmt.Errorf("error converting %s: %w", input, err)
	}
	return output, nil
}

func (c *Converter) convertFile(ctx context.Context, input, outputDir string, format Format) (string, error) {
	img, err := DecodeImage(input)
	if err != nil {
		return "", err
	}

	intermediate, err := WriteIntermediate(img, outputDir)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(intermediate)
	}()

	out, err := c.exec(ctx, TexconvArgs(format, outputDir, intermediate)...)
	if err != nil {
		return "", fmt.Errorf("conversion failed: %w: %s", err, summarizeOutput(out))
	}

	// texconv names its output after the bitmap it was given
	produced := OutputPath(intermediate, outputDir)
	final := OutputPath(input, outputDir)
	if produced == final {
		return final, nil
	}

	if _, err := os.Stat(produced); err != nil {
		return "", fmt.Errorf("%s did not produce %s: %w", c.tool(), filepath.Base(produced), err)
	}

	// os.Rename does not replace existing files on every platform
	if err := os.Remove(final); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to replace existing %s: %w", final, err)
	}
	if err := os.Rename(produced, final); err != nil {
		_ = os.Remove(produced)
		return "", fmt.Errorf("failed to rename output: %w", err)
	}

	return final, nil
}

// summarizeOutput keeps the tail of the tool output, which is where texconv reports failures
func summarizeOutput(out []byte) string {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "no additional information available"
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
