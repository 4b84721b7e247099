// Package buildinfo carries version metadata stamped at link time:
//
//	go build -ldflags "-X cephsafedisk/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "runtime/debug"

var Version = "dev"

// String returns Version, falling back to the module version recorded by
// `go install`.
func String() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
