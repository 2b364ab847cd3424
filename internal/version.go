package internal

import "fmt"

var (
	// These variables are here only to show current version. They are set in makefile during build process
	Version         = "devel"
	GitRevision     = "devel"
	VersionRevision = fmt.Sprintf("%s-%s", Version, GitRevision)
)
