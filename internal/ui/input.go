package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// maxLineLen bounds one input line. Addresses are at most 90 characters;
// anything far longer is still read so it can be reported as invalid.
const maxLineLen = 64 * 1024

// skipLine reports whether a trimmed line carries no input: blank lines
// and # comments.
func skipLine(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}

// ReadLines reads every non-blank, non-comment line of r, trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLen)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if skipLine(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// StreamLines feeds the lines of r into the returned channel as they are
// read, skipping the same lines ReadLines does. The channel is closed at
// EOF, on a read error or when ctx is done; the error channel then carries
// the read error, if any.
func StreamLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(lines)

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 4096), maxLineLen)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if skipLine(line) {
				continue
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- err
		}
	}()

	return lines, errc
}

// Prompt asks for one line of input on w and reads the answer from reader.
func (c *Console) Prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Fprintf(c.w, "    %s: ", c.paint(ColorCyan, label))
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
