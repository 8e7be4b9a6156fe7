package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// ReadLine prints label to w and returns the next trimmed line from r.
// A last line without a trailing newline is accepted.
func ReadLine(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprintf(w, "%s: ", label)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo.
// Callers wipe the result with common.WipeByteArray.
func GetPassword(w io.Writer, label string) ([]byte, error) {
	fmt.Fprintf(w, "%s: ", label)
	defer fmt.Fprintln(w)
	return readPassword(int(os.Stdin.Fd()))
}
