// Package version records build metadata for the dsbench CLI. The
// variables can be overridden at build time via -ldflags.
package version

import "github.com/fatih/color"

const (
	major = "0"
	minor = "1"
	patch = "0"
	pre   = "dev"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI with each segment
	// colored for terminal display.
	Version = versionMajorColor.Sprint(major) + "." + versionMinorColor.Sprint(minor) + "." + versionPatchColor.Sprint(patch) + "-" + pre

	// Plain is the uncolored semantic version, for JSON output and
	// anything piped away from a terminal.
	Plain = major + "." + minor + "." + patch + "-" + pre

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)
