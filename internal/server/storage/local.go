package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/kiview/internal/common"
	"github.com/dmitrijs2005/kiview/internal/mimex"
)

// LocalStore serves files from <root>/<userID>/<path> on the local filesystem.
type LocalStore struct {
	root string
}

// NewLocalStore returns a store rooted at the given directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// resolve joins the user tree and the requested path, rejecting anything
// that would escape the user's subtree.
func (s *LocalStore) resolve(userID, path string) (string, error) {
	userRoot := filepath.Join(s.root, userID)
	full := filepath.Join(userRoot, filepath.FromSlash(path))

	if full != userRoot && !strings.HasPrefix(full, userRoot+string(os.PathSeparator)) {
		return "", common.ErrorNotFound
	}
	return full, nil
}

func (s *LocalStore) Open(ctx context.Context, userID, path string) (io.ReadCloser, *FileInfo, error) {

	full, err := s.resolve(userID, path)
	if err != nil {
		return nil, nil, err
	}

	fi, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, fmt.Errorf("stat error: %w", err)
	}

	if !fi.Mode().IsRegular() {
		return nil, nil, common.ErrorNotFound
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, nil, fmt.Errorf("open error: %w", err)
	}

	name := filepath.Base(full)
	return f, &FileInfo{
		Name:     name,
		Size:     fi.Size(),
		MimeType: mimex.ForFilename(name),
	}, nil
}
