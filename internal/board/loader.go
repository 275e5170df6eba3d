package board

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var separatorRe = regexp.MustCompile(`^-{3,}[ \t]*$`)

// LoadIconPool reads an icon theme from a list of paths (files or directories).
// Each non-empty line is one icon; lines starting with '#' and "---" separators
// are skipped. Icons repeated across files are kept once, in first-seen order.
func LoadIconPool(paths []string) ([]string, error) {
	var icons []string
	seen := make(map[string]struct{})

	add := func(list []string) {
		for _, icon := range list {
			if _, ok := seen[icon]; ok {
				continue
			}
			seen[icon] = struct{}{}
			icons = append(icons, icon)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if info.IsDir() {
			files, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read dir %s: %w", path, err)
			}
			for _, entry := range files {
				if entry.IsDir() {
					continue
				}
				list, err := loadIconFile(filepath.Join(path, entry.Name()))
				if err != nil {
					return nil, err
				}
				add(list)
			}
			continue
		}

		list, err := loadIconFile(path)
		if err != nil {
			return nil, err
		}
		add(list)
	}

	if len(icons) == 0 {
		return nil, fmt.Errorf("no icons found in provided paths")
	}
	return icons, nil
}

func loadIconFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var icons []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || separatorRe.MatchString(line) {
			continue
		}
		icons = append(icons, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan file %s: %w", path, err)
	}
	return icons, nil
}
