package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	deployerrors "github.com/nyambati/deployctl/internal/errors"
)

// writeFile replaces path with data through a temporary file in the same
// directory, so readers never observe a partial document. The temporary file
// is removed whenever the rename does not happen.
func writeFile(ctx context.Context, path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return deployerrors.NewOutputWriteError(path, err.Error())
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return deployerrors.NewOutputWriteError(path, err.Error())
	}

	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = file.Write(data); err != nil {
		file.Close()
		return deployerrors.NewOutputWriteError(path, err.Error())
	}
	if err = file.Sync(); err != nil {
		file.Close()
		return deployerrors.NewOutputWriteError(path, err.Error())
	}
	if err = file.Close(); err != nil {
		return deployerrors.NewOutputWriteError(path, err.Error())
	}

	if err = ctx.Err(); err != nil {
		return deployerrors.NewAbortedError("output write", err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return deployerrors.NewOutputWriteError(path, err.Error())
	}
	return nil
}
