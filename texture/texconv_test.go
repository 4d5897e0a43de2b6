package texture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// fakeTexconv records invocations and writes an empty .dds the way texconv names it
type fakeTexconv struct {
	calls   [][]string
	fail    bool
	noWrite bool
}

func (f *fakeTexconv) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.fail {
		return []byte("texconv banner\nERROR: unsupported pixel format\n"), errors.New("exit status 1")
	}
	if f.noWrite {
		return nil, nil
	}

	var outDir string
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			outDir = args[i+1]
		}
	}
	input := args[len(args)-1]
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return nil, os.WriteFile(filepath.Join(outDir, base+".dds"), []byte("DDS "), 0644)
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		img.Set(x, x, color.NRGBA{R: 255, A: 255})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func writeTestJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func listIntermediates(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".texdds-*"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	return matches
}

func TestTexconvArgs(t *testing.T) {
	got := TexconvArgs(DXT3, "/out", "/out/.texdds-1.bmp")
	want := []string{"-y", "-f", "DXT3", "-o", "/out", "/out/.texdds-1.bmp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TexconvArgs() = %v, want %v", got, want)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/photos/photo.jpg", filepath.Join("/out", "photo.dds")},
		{"icon.SVG", filepath.Join("/out", "icon.dds")},
		{"/a/archive.tar.png", filepath.Join("/out", "archive.tar.dds")},
		{"noext", filepath.Join("/out", "noext.dds")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := OutputPath(tt.input, "/out"); got != tt.want {
				t.Errorf("OutputPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvertFile_JPEGWithDXT1(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	input := filepath.Join(srcDir, "photo.jpg")
	writeTestJPEG(t, input)

	fake := &fakeTexconv{}
	conv := &Converter{Tool: "texconv", Exec: fake.run}

	output, err := conv.ConvertFile(context.Background(), input, outDir, DXT1)
	if err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	if want := filepath.Join(outDir, "photo.dds"); output != want {
		t.Errorf("Expected output %s, got %s", want, output)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("Expected %s to exist: %v", output, err)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("Expected 1 texconv call, got %d", len(fake.calls))
	}
	call := fake.calls[0]
	if call[0] != "texconv" {
		t.Errorf("Expected tool texconv, got %s", call[0])
	}
	if !reflect.DeepEqual(call[1:6], []string{"-y", "-f", "DXT1", "-o", outDir}) {
		t.Errorf("Unexpected texconv flags: %v", call[1:])
	}
	if filepath.Ext(call[6]) != ".bmp" || filepath.Dir(call[6]) != outDir {
		t.Errorf("Expected intermediate bitmap in %s, got %s", outDir, call[6])
	}

	if left := listIntermediates(t, outDir); len(left) != 0 {
		t.Errorf("Expected no temporary files, found %v", left)
	}
}

func TestConvertFile_ReplacesExistingOutput(t *testing.T) {
	outDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "tile.png")
	writeTestPNG(t, input)

	existing := filepath.Join(outDir, "tile.dds")
	if err := os.WriteFile(existing, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	conv := &Converter{Exec: (&fakeTexconv{}).run}
	if _, err := conv.ConvertFile(context.Background(), input, outDir, DXT5); err != nil {
		t.Fatalf("ConvertFile() error = %v", err)
	}

	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "DDS " {
		t.Errorf("Expected existing output to be replaced, got %q", data)
	}
}

func TestConvertFile_ToolFailure(t *testing.T) {
	outDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "bad.png")
	writeTestPNG(t, input)

	conv := &Converter{Exec: (&fakeTexconv{fail: true}).run}
	_, err := conv.ConvertFile(context.Background(), input, outDir, DXT5)
	if err == nil {
		t.Fatal("Expected error when texconv exits non-zero")
	}

	msg := err.Error()
	if !strings.Contains(msg, input) {
		t.Errorf("Expected error to mention %s, got %q", input, msg)
	}
	if !strings.Contains(msg, "unsupported pixel format") {
		t.Errorf("Expected error to include tool output, got %q", msg)
	}
	if left := listIntermediates(t, outDir); len(left) != 0 {
		t.Errorf("Expected temporary bitmap to be removed, found %v", left)
	}
}

func TestConvertFile_MissingToolOutput(t *testing.T) {
	outDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "ghost.png")
	writeTestPNG(t, input)

	conv := &Converter{Tool: "texconv", Exec: (&fakeTexconv{noWrite: true}).run}
	_, err := conv.ConvertFile(context.Background(), input, outDir, DXT1)
	if err == nil {
		t.Fatal("Expected error when texconv writes nothing")
	}
	if !strings.Contains(err.Error(), "did not produce") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestConvertFile_UndecodableInput(t *testing.T) {
	outDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(input, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeTexconv{}
	conv := &Converter{Exec: fake.run}
	_, err := conv.ConvertFile(context.Background(), input, outDir, DXT1)
	if err == nil {
		t.Fatal("Expected decode error")
	}
	if !strings.Contains(err.Error(), input) {
		t.Errorf("Expected error to mention %s, got %q", input, err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("texconv should not run for undecodable input, got %d calls", len(fake.calls))
	}
}

func TestConvertFile_MissingExecutable(t *testing.T) {
	outDir := t.TempDir()
	input := filepath.Join(t.TempDir(), "photo.png")
	writeTestPNG(t, input)

	conv := NewConverter(filepath.Join(t.TempDir(), "no-such-texconv"))
	_, err := conv.ConvertFile(context.Background(), input, outDir, DXT1)
	if err == nil {
		t.Fatal("Expected launch failure for missing executable")
	}
	if left := listIntermediates(t, outDir); len(left) != 0 {
		t.Errorf("Expected temporary bitmap to be removed, found %v", left)
	}
}

func TestSummarizeOutput(t *testing.T) {
	if got := summarizeOutput(nil); got != "no additional information available" {
		t.Errorf("Unexpected summary for empty output: %q", got)
	}

	long := "1\n2\n3\n4\n5\n6\n7\n"
	if got := summarizeOutput([]byte(long)); got != "3\n4\n5\n6\n7" {
		t.Errorf("Expected last five lines, got %q", got)
	}
}
