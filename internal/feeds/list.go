package feeds

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrFeedListNotFound is returned when the feed list file does not exist.
var ErrFeedListNotFound = errors.New("feed list file not found")

// LoadList reads one feed URL per line. Blank lines and lines starting
// with '#' are skipped; surrounding whitespace is trimmed. The file is
// read on every call so edits take effect without a restart.
func LoadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFeedListNotFound, path)
		}
		return nil, fmt.Errorf("opening feed list: %w", err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading feed list %s: %w", path, err)
	}
	return urls, nil
}
