package typesbuilder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"golang.org/x/mod/semver"
)

const (
	compilerBinRequest     = "typescript/bin/tsc"
	compilerPackageRequest = "typescript/package.json"

	// inferenceRemovedIn is the first compiler release line without
	// declaration inference. Its prereleases lack it too.
	inferenceRemovedIn = "v3.5"
)

// ResolveModule finds request below a node_modules directory of dir or any of
// its ancestors, the way Node resolves packages. Lookup failures of any kind
// count as not found.
func ResolveModule(dir, request string) (string, bool) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	rel := filepath.FromSlash(request)
	for {
		if filepath.Base(current) != "node_modules" {
			candidate := filepath.Join(current, "node_modules", rel)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// CompilerBin locates the tsc entry script reachable from cwd.
func CompilerBin(cwd string) (string, bool) {
	return ResolveModule(cwd, compilerBinRequest)
}

// CompilerVersion reads the version of the typescript package reachable from cwd.
func CompilerVersion(cwd string) (string, error) {
	path, ok := ResolveModule(cwd, compilerPackageRequest)
	if !ok {
		return "", errors.New("typescript is not installed")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	v := gjson.GetBytes(data, "version")
	if v.Type != gjson.String || v.Str == "" {
		return "", fmt.Errorf("%s has no version", path)
	}
	return v.Str, nil
}

// SupportsInference reports whether a compiler of the given version still
// ships declaration inference.
func SupportsInference(version string) bool {
	v := "v" + version
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(semver.MajorMinor(v), inferenceRemovedIn) < 0
}

// TSConfigPath resolves the compiler configuration path against cwd.
func TSConfigPath(cwd string, opts Options) string {
	p := opts.TSConfigOrDefault()
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	return absPath(p)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
