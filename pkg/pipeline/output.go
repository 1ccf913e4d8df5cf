package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/musicbox/pkg/errors"
)

// PagePlaceholder in an output pattern is replaced by the 1-based page number.
const PagePlaceholder = "%"

// PageFileName returns the file name of page (0-based) out of pages for an
// output pattern. A placeholder is always substituted. Without one, a single
// page keeps the pattern as is and multiple pages get "-<n>" inserted before
// the extension.
func PageFileName(pattern string, page, pages int) string {
	n := strconv.Itoa(page + 1)
	if strings.Contains(pattern, PagePlaceholder) {
		return strings.Replace(pattern, PagePlaceholder, n, 1)
	}
	if pages <= 1 {
		return pattern
	}
	ext := filepath.Ext(pattern)
	return strings.TrimSuffix(pattern, ext) + "-" + n + ext
}

// OutputPath returns the pattern for format given the user's output path.
// When several formats are written at once, the extension is replaced by
// the format's.
func OutputPath(output, format string, multiFormat bool) string {
	if !multiFormat {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + "." + format
}

// WriteArtifact writes the pages of one format and returns the paths
// written.
func WriteArtifact(pattern string, pages [][]byte) ([]string, error) {
	if err := errors.ValidateOutputPattern(pattern); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(pages))
	for i, data := range pages {
		path := PageFileName(pattern, i, len(pages))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
