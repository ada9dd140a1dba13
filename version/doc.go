// Package version resolves the build identity of a tierfs binary.
//
// Release builds stamp Version, Commit, and Date through -ldflags;
// anything left unset is recovered from the module metadata the Go
// toolchain embeds in the binary (debug.ReadBuildInfo), so go-install
// and development builds still report a usable identity. Get returns
// the resolved Info; its String method renders the one-line form shown
// by --version and at mount startup.
package version
