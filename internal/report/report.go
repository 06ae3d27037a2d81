// Package report defines the plain text export of the inspected values.
//
// An export is a sequence of sections separated by one empty line. Each
// section is a title line, a line of dashes and the lines of one view, the
// first of which holds the column titles.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Rule is the line written below every section title.
var Rule = strings.Repeat("-", 28)

// Section is the export of one view.
type Section struct {
	Title string
	// Header holds the column titles.
	Header []string
	Rows   [][]string
}

// Lines renders a section with separator sep.
func (s Section) Lines(sep string) []string {
	lines := make([]string, 0, len(s.Rows)+3)
	lines = append(lines, s.Title, Rule, strings.Join(s.Header, sep))
	for _, r := range s.Rows {
		lines = append(lines, strings.Join(r, sep))
	}
	return lines
}

// Build assembles an export from section titles and view lines.
func Build(titles []string, values [][]string) []string {
	var lines []string
	for i, title := range titles {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, title, Rule)
		if i < len(values) {
			lines = append(lines, values[i]...)
		}
	}
	return lines
}

// Parse splits an export back into sections. Values containing sep cannot
// be told apart from column breaks; the last column absorbs the rest of the
// line.
func Parse(lines []string, sep string) ([]Section, error) {
	if sep == "" {
		return nil, errors.New("separator cannot be empty")
	}

	var sections []Section
	for i := 0; i < len(lines); {
		if lines[i] == "" {
			i++
			continue
		}
		if i+1 >= len(lines) || lines[i+1] != Rule {
			return nil, fmt.Errorf("line %d: expected a section title followed by %q", i+1, Rule)
		}
		s := Section{Title: lines[i]}
		i += 2
		if i < len(lines) && lines[i] != "" {
			s.Header = strings.Split(lines[i], sep)
			i++
		}
		for i < len(lines) && lines[i] != "" {
			s.Rows = append(s.Rows, strings.SplitN(lines[i], sep, max(len(s.Header), 1)))
			i++
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// Save writes lines to path, replacing any existing file. The file is
// written to a temporary file in the same directory and renamed, so a
// failed save leaves the previous content in place.
func Save(path string, lines []string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create file in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	if _, err = tmp.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Load reads an export file into lines.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
