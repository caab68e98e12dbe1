package config

import (
	"fmt"
	"io"
	"runtime"
)

// Version information, set with -ldflags at build time
var (
	Version = "None"
	GitHash = "None"
	BuildTS = "None"
)

// PrintVersionInfo writes the version information to w
func PrintVersionInfo(w io.Writer) {
	fmt.Fprintf(w, "jsonserver Version: %s\n", Version)
	fmt.Fprintf(w, "Git Commit Hash: %s\n", GitHash)
	fmt.Fprintf(w, "Build TS: %s\n", BuildTS)
	fmt.Fprintf(w, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(w, "Go OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
