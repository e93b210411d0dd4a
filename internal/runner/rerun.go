package runner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadRerunFile returns the scenario locations listed in path. Entries are separated
// by whitespace; a missing file lists nothing.
func ReadRerunFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open rerun file: %w", err)
	}
	defer f.Close()

	var locations []string
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		locations = append(locations, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rerun file: %w", err)
	}
	return locations, nil
}

// WriteRerunFile writes one failed location per line. An empty list truncates the file.
func WriteRerunFile(path string, locations []string) error {
	content := strings.Join(locations, "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write rerun file: %w", err)
	}
	return nil
}
