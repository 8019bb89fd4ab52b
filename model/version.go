// Package model holds the dataset, report, flag and build metadata types
// shared across services.
package model

import "fmt"

// VersionInfo is the build metadata stamped in at link time.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// String formats the metadata as "<version> (commit <commit>, built <date>)".
func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", v.Version, v.Commit, v.Date)
}
