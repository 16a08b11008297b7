// Package entries reads the console's app list and resolves icon files.
//
// The app list is a plain text file with one entry name per line. Blank
// lines and lines starting with '#' are skipped. Icons follow the
// <dir>/<name><ext> convention; a missing icon is not an error.
package entries

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrNoEntries = errors.New("app list is empty")

// Load reads the app list at path.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open app list: %w", err)
	}
	defer f.Close()

	names, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read app list %s: %w", path, err)
	}
	return names, nil
}

// Parse reads entry names from r, in order.
func Parse(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// Write saves names as an app list, one per line.
func Write(path string, names []string) error {
	if len(names) == 0 {
		return ErrNoEntries
	}
	data := strings.Join(names, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("write app list: %w", err)
	}
	return nil
}

// IconPath returns the icon file for name, or "" when dir is unset or the
// file does not exist.
func IconPath(dir, name, ext string) string {
	if dir == "" || name == "" {
		return ""
	}
	path := filepath.Join(dir, name+ext)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}

// Icons resolves the icon of every name. Names without an icon are absent.
func Icons(dir, ext string, names []string) map[string]string {
	icons := make(map[string]string, len(names))
	for _, name := range names {
		if p := IconPath(dir, name, ext); p != "" {
			icons[name] = p
		}
	}
	return icons
}
