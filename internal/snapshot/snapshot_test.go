package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/designsync/figma-fetch/internal/figma"
	"github.com/designsync/figma-fetch/internal/snapshot"
	"github.com/designsync/figma-fetch/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "figma_raw_abc123.json", snapshot.FileName("abc123"))
	assert.Equal(t, "figma_raw_z4yvn5xr.json", snapshot.FileName("z4yvn5xr"))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		channel      string
		payload      string
		existingFile map[string]string
		missingDir   bool
		dirIsFile    bool
		readOnlyDir  bool

		want    map[string]string
		wantErr bool
	}{
		"Nested document": {
			channel: "abc123",
			payload: `{"document": {"id": "1"}}`,
			want:    map[string]string{"figma_raw_abc123.json": "{\n  \"document\": {\n    \"id\": \"1\"\n  }\n}"},
		},
		"Missing directory is created": {
			channel:    "abc123",
			payload:    `{"a": 1}`,
			missingDir: true,
			want:       map[string]string{"figma_raw_abc123.json": "{\n  \"a\": 1\n}"},
		},
		"Existing file is overwritten": {
			channel:      "abc123",
			payload:      `{"version": "2"}`,
			existingFile: map[string]string{"figma_raw_abc123.json": "{\n  \"version\": \"1\",\n  \"stale\": true\n}"},
			want:         map[string]string{"figma_raw_abc123.json": "{\n  \"version\": \"2\"\n}"},
		},
		"Other channels are left untouched": {
			channel:      "abc123",
			payload:      `{}`,
			existingFile: map[string]string{"figma_raw_def456.json": "{}"},
			want:         map[string]string{"figma_raw_abc123.json": "{}", "figma_raw_def456.json": "{}"},
		},
		"Key order is preserved": {
			channel: "abc123",
			payload: `{"name":"Dark Theme","document":{"children":[]},"version":"1"}`,
			want:    map[string]string{"figma_raw_abc123.json": "{\n  \"name\": \"Dark Theme\",\n  \"document\": {\n    \"children\": []\n  },\n  \"version\": \"1\"\n}"},
		},

		"Error on invalid channel":  {channel: "../escape", payload: `{}`, wantErr: true},
		"Error on invalid payload":  {channel: "abc123", payload: `{"a":`, wantErr: true},
		"Error on directory a file": {channel: "abc123", payload: `{}`, dirIsFile: true, wantErr: true},
		"Error on read-only directory, previous file kept": {
			channel:      "abc123",
			payload:      `{"version": "2"}`,
			existingFile: map[string]string{"figma_raw_abc123.json": "{\n  \"version\": \"1\"\n}"},
			readOnlyDir:  true,
			want:         map[string]string{"figma_raw_abc123.json": "{\n  \"version\": \"1\"\n}"},
			wantErr:      true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if tc.readOnlyDir && !testutils.IsUnixNonRoot() {
				t.Skip("Skipping test: requires a Unix-like system running as non-root")
			}

			dir := filepath.Join(t.TempDir(), "docs")
			if !tc.missingDir && !tc.dirIsFile {
				require.NoError(t, os.MkdirAll(dir, 0750), "Setup: could not create output directory")
			}
			if tc.dirIsFile {
				require.NoError(t, os.WriteFile(dir, []byte("not a dir"), 0600), "Setup: could not create file in place of directory")
			}
			for name, content := range tc.existingFile {
				require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600), "Setup: could not write existing file")
			}

			if tc.readOnlyDir {
				require.NoError(t, os.Chmod(dir, 0500), "Setup: could not make output directory read-only")
				// Restore write permission for the temporary directory cleanup.
				t.Cleanup(func() { _ = os.Chmod(dir, 0750) })
			}

			path, err := snapshot.Write(dir, tc.channel, figma.Payload(tc.payload))
			if tc.wantErr {
				require.Error(t, err)
				assert.Empty(t, path, "No path should be returned on error")
				if tc.want != nil {
					got, err := testutils.GetDirContents(t, dir, 1)
					require.NoError(t, err)
					assert.Equal(t, tc.want, got, "Directory contents should be unchanged")
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, snapshot.FileName(tc.channel)), path, "Returned path should match the written file")

			got, err := testutils.GetDirContents(t, dir, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got, "Directory contents should match")
		})
	}
}
