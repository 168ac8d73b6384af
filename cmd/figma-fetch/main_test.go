package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testApp struct {
	runError bool
}

func (a testApp) Run() error {
	if a.runError {
		return errors.New("run error!")
	}
	return nil
}

func TestRun(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		runError bool

		wantReturnCode int
	}{
		"Run and exit successfully": {},
		"Run and exit error":        {runError: true, wantReturnCode: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			rc := run(testApp{runError: tc.runError}, &stderr)

			assert.Equal(t, tc.wantReturnCode, rc, "run() returned an unexpected exit code")
			if !tc.runError {
				assert.Empty(t, stderr.String(), "Nothing should be printed on stderr on success")
				return
			}
			assert.Contains(t, stderr.String(), "[ERROR]", "Error should be prefixed")
			assert.Contains(t, stderr.String(), "run error!", "Error message should be printed")
		})
	}
}
