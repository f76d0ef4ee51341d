package uci

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

func compilerInfo() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compiled by %v (%v) for %v/%v", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
	var bi, ok = debug.ReadBuildInfo()
	if !ok {
		return sb.String()
	}
	fmt.Fprintf(&sb, "\nModule %v %v", bi.Main.Path, bi.Main.Version)
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision", "vcs.time", "vcs.modified", "CGO_ENABLED", "GOAMD64", "-race":
			fmt.Fprintf(&sb, "\n%v=%v", setting.Key, setting.Value)
		}
	}
	return sb.String()
}
