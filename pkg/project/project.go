// Package project loads the project description: the set of compilation units
// to analyze and the build arguments needed to semantically index each one.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ModuleNameFlag is the build argument whose following token names the module
// a compilation unit belongs to.
const ModuleNameFlag = "-module-name"

// Unit is one compilation unit: a source file plus the arguments required to
// index it.
type Unit struct {
	Path string   `json:"file"`
	Args []string `json:"arguments"`
}

// Module returns the unit's module name, derived from the token following the
// module-name flag in its build arguments. Empty when the flag is absent.
func (u Unit) Module() string {
	return ModuleName(u.Args)
}

// ModuleName extracts the module name from a build argument list.
func ModuleName(args []string) string {
	for i, arg := range args {
		if arg == ModuleNameFlag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// compileCommand mirrors one entry of a compile-commands database. Entries
// carry either an argument vector or a single command string.
type compileCommand struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments"`
	Command   string   `json:"command"`
}

// LoadCompileCommands reads a compile-commands JSON database and returns one
// Unit per entry, with file paths resolved against each entry's directory.
func LoadCompileCommands(path string) ([]Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read compile commands: %w", err)
	}

	var commands []compileCommand
	if err := json.Unmarshal(data, &commands); err != nil {
		return nil, fmt.Errorf("failed to parse compile commands %s: %w", path, err)
	}

	units := make([]Unit, 0, len(commands))
	for _, cmd := range commands {
		args := cmd.Arguments
		if len(args) == 0 && cmd.Command != "" {
			args = strings.Fields(cmd.Command)
		}

		file := cmd.File
		if file == "" {
			continue
		}
		if !filepath.IsAbs(file) && cmd.Directory != "" {
			file = filepath.Join(cmd.Directory, file)
		}

		units = append(units, Unit{Path: file, Args: args})
	}

	return units, nil
}
