// Package versionutil reads and compares tool versions reported on the command line.
package versionutil

import (
	"regexp"

	"golang.org/x/mod/semver"

	"github.com/felixgeelhaar/axsetup/internal/domain/manifest"
)

// versionPattern finds the first dotted version number in --version output.
var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// Parse extracts the first version number from command output, returned in
// semver form ("v1.2.3"). It returns "" when none is found.
func Parse(output string) string {
	v := versionPattern.FindString(output)
	if v == "" {
		return ""
	}
	return manifest.NormalizeVersion(v)
}

// MeetsMinimum compares found against minimum with semver ordering. The
// detail is the found version on success and the reason otherwise.
func MeetsMinimum(found, minimum string) (bool, string) {
	have, want := manifest.NormalizeVersion(found), manifest.NormalizeVersion(minimum)
	if !semver.IsValid(have) || !semver.IsValid(want) {
		return false, "invalid version " + found + " or " + minimum
	}
	if semver.Compare(have, want) < 0 {
		return false, have + " < " + want
	}
	return true, have
}
