package version

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	defer func(v, c string) { Version, GitCommit = v, c }(Version, GitCommit)

	tests := []struct {
		name    string
		version string
		commit  string
		out     string
	}{
		{
			name:    "release",
			version: "v0.3.0",
			out:     "latticefold version v0.3.0\n",
		},
		{
			name:    "release without prefix",
			version: "0.3.0-rc.1",
			out:     "latticefold version v0.3.0-rc.1\n",
		},
		{
			name:    "with commit",
			version: "v0.3.0",
			commit:  "4f1c2a9",
			out:     "latticefold version v0.3.0\ngit commit: 4f1c2a9\n",
		},
		{
			name:    "devel",
			version: "devel",
			out:     "latticefold version devel\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, GitCommit = tt.version, tt.commit
			assert.Equal(t, tt.out, String())
		})
	}
}

func TestSemver(t *testing.T) {
	defer func(v string) { Version = v }(Version)

	Version = "v1.2.3"
	sv, err := Semver()
	require.NoError(t, err)
	assert.Equal(t, semver.MustParse("1.2.3"), sv)

	Version = "devel"
	_, err = Semver()
	assert.Error(t, err)
}
