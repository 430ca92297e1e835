package version

import (
	"fmt"

	"github.com/blang/semver/v4"
)

// Version is the release of latticefold the binary belongs to, set at
// link time.
var Version = "devel"

// GitCommit is the commit the binary was built from, set at link time.
var GitCommit string

// Semver parses Version, tolerating a leading v. Development builds do
// not parse.
func Semver() (semver.Version, error) {
	return semver.ParseTolerant(Version)
}

// String renders Version and GitCommit for the version command. Releases
// are printed in canonical form.
func String() string {
	v := Version
	if sv, err := Semver(); err == nil {
		v = "v" + sv.String()
	}
	if GitCommit == "" {
		return fmt.Sprintf("latticefold version %s\n", v)
	}
	return fmt.Sprintf("latticefold version %s\ngit commit: %s\n", v, GitCommit)
}
