package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalService keeps objects as files below a root directory.
type LocalService struct {
	root string
}

func NewLocalService(root string) *LocalService {
	return &LocalService{root: filepath.Clean(root)}
}

// Root is the directory objects are stored under.
func (s *LocalService) Root() string {
	return s.root
}

// resolve maps key onto a path below root, rejecting keys that escape it.
func (s *LocalService) resolve(key string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(key))
	if clean == "/" {
		return "", fmt.Errorf("object key is required")
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func (s *LocalService) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("open %s: %w", p, err)
	}
	return f, nil
}

func (s *LocalService) Upload(ctx context.Context, key, localPath string, opts UploadOptions) (string, error) {
	dst, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open file %s: %w", localPath, err)
	}
	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat file %s: %w", localPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	// write next to the destination and rename so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var reader io.Reader = src
	if progress := newProgressReporter(fi.Size(), opts.ProgressCallback); progress != nil {
		progress.report(0)
		reader = io.TeeReader(src, progress)
		defer progress.flush()
	}

	if _, err := io.Copy(tmp, contextReader{ctx: ctx, r: reader}); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("copy %s: %w", localPath, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("move object into place: %w", err)
	}

	return dst, nil
}

var _ Service = (*LocalService)(nil)

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
