// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"text/tabwriter"
)

// Dep is one module dependency of the running binary.
type Dep struct {
	Path    string
	Version string
}

// Env describes the build and host.
type Env struct {
	GoVersion string
	OS, Arch  string
	NumCPU    int
	Module    string
	Version   string
	Deps      []Dep
}

// Environment reads the build info of the running binary. Module and Deps
// are empty when build info is unavailable (for example under some test
// runners).
func Environment() Env {
	env := Env{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return env
	}
	env.Module, env.Version = bi.Main.Path, bi.Main.Version
	for _, d := range bi.Deps {
		if d.Replace != nil {
			d = d.Replace
		}
		env.Deps = append(env.Deps, Dep{Path: d.Path, Version: d.Version})
	}

	return env
}

// WriteEnvironment prints Environment as a two-column block.
func WriteEnvironment(w io.Writer) error {
	env := Environment()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	section(tw, "Environment")
	fmt.Fprintf(tw, "go\t%s\n", env.GoVersion)
	fmt.Fprintf(tw, "platform\t%s/%s (%d CPUs)\n", env.OS, env.Arch, env.NumCPU)
	if env.Module != "" {
		fmt.Fprintf(tw, "module\t%s %s\n", env.Module, env.Version)
	}
	for _, d := range env.Deps {
		fmt.Fprintf(tw, "%s\t%s\n", d.Path, d.Version)
	}

	return tw.Flush()
}
