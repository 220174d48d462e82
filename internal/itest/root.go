//go:build integration

package itest

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const modulePath = "github.com/forPelevin/viralclip"

// findRepoRoot resolves the module root from this file's location, two
// directories up, and checks that its go.mod declares modulePath.
func findRepoRoot() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok || !filepath.IsAbs(file) {
		return "", errors.New("source location unavailable; build without -trimpath")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))

	f, err := os.Open(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("open go.mod: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if mod, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "module "); ok {
			if mod = strings.TrimSpace(mod); mod != modulePath {
				return "", fmt.Errorf("%s declares module %q, want %q", root, mod, modulePath)
			}
			return root, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read go.mod: %w", err)
	}
	return "", fmt.Errorf("%s/go.mod has no module line", root)
}
