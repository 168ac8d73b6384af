// Package constants is responsible for defining the constants used in the application.
package constants

import (
	"log/slog"
	"time"
)

var (
	// Version is the version of the application.
	Version = "Dev"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "figma-fetch"

	// DefaultLogLevel is the default log level selected without any verbosity flags.
	DefaultLogLevel = slog.LevelWarn

	// DefaultBaseURL is the Figma REST endpoint serving whole files by key.
	DefaultBaseURL = "https://api.figma.com/v1/files"

	// TokenHeader is the header carrying the personal access token.
	TokenHeader = "X-Figma-Token"

	// TokenEnv is the environment variable used as a fallback for the token flag.
	TokenEnv = "FIGMA_ACCESS_TOKEN"

	// DefaultTimeout is the request timeout for the single file fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultOutputDir is the directory raw files are written to, relative to the working directory.
	DefaultOutputDir = "docs"

	// RawFilePrefix is the base name prefix of raw files.
	RawFilePrefix = "figma_raw_"

	// RawFileExt is the extension of raw files.
	RawFileExt = ".json"

	// RecordFileName is the base name of the sync record kept next to the raw files.
	RecordFileName = "figma_sync.toml"

	// JSONIndent is the indentation used when writing raw files.
	JSONIndent = "  "
)
