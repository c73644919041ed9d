package fsstore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/ganot/dx-portfolio/internal/repository"
)

// resolve maps a slash-separated data-root path to an absolute OS path,
// rejecting absolute inputs and any ".." segment.
func (s *Store) resolve(rel string) (string, error) {
	if rel == "" || path.IsAbs(rel) || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("%q: %w", rel, repository.ErrPathEscape)
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if seg == ".." {
			return "", fmt.Errorf("%q: %w", rel, repository.ErrPathEscape)
		}
	}
	full := filepath.Join(s.root, filepath.FromSlash(path.Clean(rel)))
	if full != s.root && !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", rel, repository.ErrPathEscape)
	}
	return full, nil
}
