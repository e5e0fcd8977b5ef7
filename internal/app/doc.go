// Package app assembles the library for callers that export burial records:
// it loads configuration, installs the logger and picks the exporter.
package app
