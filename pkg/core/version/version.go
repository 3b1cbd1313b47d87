// ============================================================================
// meinZAHLWERK (mZW) - Big-Integer Toolkit
// ============================================================================
//
// Package:     version
// Description: Central version management for library and surfaces
// Author:      Mike Stoffels
// Created:     2026-09-27
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for mZW components
const (
	// Library version
	Library = "0.4.0"

	// Surface versions
	CLI      = "0.4.0"
	Server   = "0.3.0"
	Explorer = "0.2.0"

	// API is the gRPC package version of the calculator service
	API = "v1"
)

// Component returns the version for a given component name
func Component(name string) string {
	switch name {
	case "cli", "mzw":
		return CLI
	case "server", "calc-server":
		return Server
	case "explorer", "tui":
		return Explorer
	default:
		return Library
	}
}

// String returns the banner printed by "mzw version"
func String() string {
	return fmt.Sprintf("meinZAHLWERK %s (cli %s, server %s, api %s)", Library, CLI, Server, API)
}
