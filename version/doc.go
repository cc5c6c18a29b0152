// Package version reports the build version of fobstore binaries.
//
// Version and commit are set at link time, falling back to the VCS stamp
// the Go toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/fobstore/version.Version=1.2.0" ./cmd/fobcheck
package version
