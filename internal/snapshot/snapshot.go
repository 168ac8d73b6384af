// Package snapshot stores raw design file payloads on disk.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/designsync/figma-fetch/internal/constants"
	"github.com/designsync/figma-fetch/internal/figma"
	"github.com/designsync/figma-fetch/internal/fileutils"
	"github.com/ubuntu/decorate"
)

// FileName returns the base name of the raw file for channel.
func FileName(channel string) string {
	return constants.RawFilePrefix + channel + constants.RawFileExt
}

// Write stores p as indented JSON in dir, creating dir if needed, and returns the path of the written file.
// An existing file for the same channel is replaced.
func Write(dir, channel string, p figma.Payload) (path string, err error) {
	defer decorate.OnError(&err, "could not save raw file for %q", channel)

	if err := figma.ValidateFileKey(channel); err != nil {
		return "", err
	}

	data, err := fileutils.IndentJSON(p, constants.JSONIndent)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("could not create directory: %v", err)
	}

	path = filepath.Join(dir, FileName(channel))
	if err := fileutils.AtomicWrite(path, data, 0644); err != nil {
		return "", err
	}

	return path, nil
}
