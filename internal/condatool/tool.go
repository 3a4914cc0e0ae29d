// Package condatool models the conda-family runtimes the bootstrap can drive.
// The three tools accept compatible but not identical subcommands; each
// variant carries the exact argument shapes it expects.
package condatool

import (
	"os/exec"
	"path/filepath"
)

// Tool is one conda-family runtime. Selected once per run, immutable after.
type Tool struct {
	// Name is the family name (conda, mamba, micromamba).
	Name string
	// Path is the invocation path; defaults to Name (resolved via PATH).
	Path string

	// createFileFlag differs between families: conda and mamba take an
	// explicit-spec lockfile via --file, micromamba via -f.
	createFileFlag string
	// hookSubcommand reports whether the shell hook is spelled
	// "shell hook -s <shell>" (micromamba) instead of "shell.<shell> hook".
	hookSubcommand bool
}

var (
	// Conda is the reference implementation and the first probe target.
	Conda = Tool{Name: "conda", Path: "conda", createFileFlag: "--file"}
	// Mamba is command-compatible with conda for everything used here.
	Mamba = Tool{Name: "mamba", Path: "mamba", createFileFlag: "--file"}
	// Micromamba is a standalone binary with slightly different flags.
	Micromamba = Tool{Name: "micromamba", Path: "micromamba", createFileFlag: "-f", hookSubcommand: true}
)

// known lists the probe order: conda before mamba before micromamba.
var known = []Tool{Conda, Mamba, Micromamba}

var lookPathFunc = exec.LookPath

// Locate probes the execution path for a known runtime and returns the first
// found. Pure query; no side effects.
func Locate() (Tool, bool) {
	for _, tool := range known {
		if path, err := lookPathFunc(tool.Path); err == nil {
			tool.Path = path
			return tool, true
		}
	}
	return Tool{}, false
}

// LocatePrefix returns the conda binary inside a Miniconda install prefix when
// present. Used right after a fresh install, before the shell has been
// reinitialized and PATH updated.
func LocatePrefix(prefix string) (Tool, bool) {
	candidate := filepath.Join(prefix, "bin", "conda")
	if path, err := lookPathFunc(candidate); err == nil {
		tool := Conda
		tool.Path = path
		return tool, true
	}
	return Tool{}, false
}

// EnvListArgs returns the arguments of the environment-listing subcommand.
func (t Tool) EnvListArgs() []string {
	return []string{"env", "list"}
}

// EnvRemoveArgs returns the arguments removing the named environment.
func (t Tool) EnvRemoveArgs(name string) []string {
	return []string{"env", "remove", "-y", "-n", name}
}

// CreateArgs returns the arguments creating the named environment with the
// lockfile as the exact package manifest.
func (t Tool) CreateArgs(name string, lockfile string) []string {
	return []string{"create", "-y", "-n", name, t.createFileFlag, lockfile}
}

// RunArgs returns the arguments running a command inside the named environment.
func (t Tool) RunArgs(name string, command ...string) []string {
	args := []string{"run", "-n", name}
	return append(args, command...)
}

// ShellHook returns the shell snippet that initializes the tool in the given
// shell, suitable for an eval in the operator's profile.
func (t Tool) ShellHook(shell string) string {
	if t.hookSubcommand {
		return t.Name + " shell hook -s " + shell
	}
	return t.Name + " shell." + shell + " hook"
}
