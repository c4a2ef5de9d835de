// Package compileinfo reports which commit a binary was built from, so that a
// catalog can be traced back to the code that produced it.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Package == "" {
		return "Build information is unavailable for this binary."
	}

	commit := c.Commit
	if commit == "" {
		commit = "(unknown)"
	}
	mod := ""
	if c.Modified {
		mod = " The working tree had uncommitted changes."
	}

	return fmt.Sprintf("%s %s, built with %s from commit %s (%s).%s", c.Package, c.Version, c.GoVersion, commit, c.CommitTime, mod)
}

func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}
	return FromBuildInfo(z)
}

func FromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		GoVersion: z.GoVersion,
		Package:   z.Path,
		Version:   z.Main.Version,
	}
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Get())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
