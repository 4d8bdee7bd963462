package testutils

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"folderpick/pkg/types"

	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}

var typeByExt = map[string]types.FileType{
	".png": types.FileImage, ".jpg": types.FileImage, ".jpeg": types.FileImage,
	".bmp": types.FileImage, ".gif": types.FileImage, ".webp": types.FileImage,
	".svg": types.FileSVG,
	".mp4": types.FileVideo, ".webm": types.FileVideo, ".mov": types.FileVideo,
	".mkv": types.FileVideo, ".avi": types.FileVideo,
	".mp3": types.FileAudio, ".wav": types.FileAudio, ".ogg": types.FileAudio,
	".flac": types.FileAudio,
}

// Listing builds a listing of dir with the given subdirectories and files,
// classifying files by extension the way the backend does. An empty
// parent marks the filesystem root.
func Listing(dir, parent string, dirs []string, files []string) *types.Listing {
	l := &types.Listing{
		CurrentDirectory: dir,
		ParentDirectory:  parent,
		Dirs:             []types.DirectoryEntry{},
		Files:            []types.FileEntry{},
	}
	for _, d := range dirs {
		l.Dirs = append(l.Dirs, types.DirectoryEntry{Name: d, Path: path.Join(dir, d)})
	}
	for _, f := range files {
		ext := strings.ToLower(path.Ext(f))
		ft, ok := typeByExt[ext]
		if !ok {
			ft = types.FileOther
		}
		l.Files = append(l.Files, types.FileEntry{Name: f, Path: path.Join(dir, f), Ext: ext, Type: ft})
	}
	l.TotalCount = len(l.Files)
	return l
}

// PNG encodes a w×h image filled with c
func PNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// SVG returns a square SVG document filled with fill
func SVG(size int, fill string) []byte {
	return []byte(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%[1]d" height="%[1]d" viewBox="0 0 %[1]d %[1]d">`+
		`<rect x="0" y="0" width="%[1]d" height="%[1]d" fill="%[2]s"/></svg>`, size, fill))
}
