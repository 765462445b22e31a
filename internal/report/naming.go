package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePrefix starts every result file name.
const FilePrefix = "panel_mism_output_"

// EnsureDir creates dir if it does not exist and reports whether it did.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("output path %s is not a directory", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking output directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create output directory: %w", err)
	}
	return true, nil
}

// ListResults returns the names of result CSVs already in dir. A missing
// directory has none.
func ListResults(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isResultFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// NextIndex picks the suffix for a new result file: the number of existing
// results, bumped past any name that is already taken.
func NextIndex(dir string) (int, error) {
	existing, err := ListResults(dir)
	if err != nil {
		return 0, err
	}

	n := len(existing)
	for {
		_, err := os.Stat(CSVPath(dir, n))
		if os.IsNotExist(err) {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("checking result file: %w", err)
		}
		n++
	}
}

// CSVPath returns the CSV path for result index n.
func CSVPath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d.csv", FilePrefix, n))
}

// ChartPath returns the PNG chart path for result index n.
func ChartPath(dir string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d.png", FilePrefix, n))
}

func isResultFile(name string) bool {
	return strings.HasPrefix(name, FilePrefix) && strings.HasSuffix(name, ".csv")
}
