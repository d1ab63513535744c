package desc

import (
	"bufio"
	"io"
	"strings"
)

// record holds the sections of a desc or files record, keyed by section name without the
// surrounding percent signs.
type record map[string][]string

// first returns the first value of section, or "" when the section is absent.
func (r record) first(section string) string {
	if values := r[section]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// parseRecord reads a pacman database record: a sequence of %SECTION% headers, each followed
// by one value per line and terminated by a blank line or end of input.
func parseRecord(r io.Reader) (record, error) {
	rec := make(record)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var section string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if line == "" {
			section = ""
			continue
		}

		if section == "" {
			if !isHeader(line) {
				// Stray value outside a section.
				continue
			}
			section = line[1 : len(line)-1]
			if _, ok := rec[section]; !ok {
				rec[section] = nil
			}
			continue
		}

		rec[section] = append(rec[section], line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}

func isHeader(line string) bool {
	return len(line) > 2 && line[0] == '%' && line[len(line)-1] == '%'
}
