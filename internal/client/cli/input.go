package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/skillshare/internal/client/models"
	"github.com/dmitrijs2005/skillshare/internal/common"
	"github.com/dmitrijs2005/skillshare/internal/filex"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
//
// Post descriptions and comments are read this way.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// getPassword is an indirection so tests can avoid the terminal.
var getPassword = GetPassword

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

// askDefault keeps current when the user just presses Enter.
func (a *App) askDefault(prompt, current string) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	v, err := a.ask(prompt)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

// askClearable is askDefault where "-" empties the field.
func (a *App) askClearable(prompt, current string) (string, error) {
	v, err := a.askDefault(prompt+" ('-' clears)", current)
	if err != nil {
		return "", err
	}
	if v == "-" {
		return "", nil
	}
	return v, nil
}

func (a *App) askInt(prompt string, current int) (int, error) {
	def := ""
	if current != 0 {
		def = strconv.Itoa(current)
	}
	v, err := a.askDefault(prompt, def)
	if err != nil || v == "" {
		return current, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", v)
	}
	return n, nil
}

func (a *App) askPassword() (string, error) {
	pw, err := getPassword(a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// askImage reads an optional image path. An empty answer means no image.
func (a *App) askImage(prompt string) (*models.Attachment, error) {
	p, err := a.ask(prompt + " (path, empty to skip)")
	if err != nil || p == "" {
		return nil, err
	}
	name, data, err := filex.ReadImage(p)
	if err != nil {
		return nil, err
	}
	return &models.Attachment{FileName: name, Data: data}, nil
}

func (a *App) confirm(prompt string) (bool, error) {
	v, err := a.ask(prompt + " (y/N)")
	if err != nil {
		return false, err
	}
	v = strings.ToLower(v)
	return v == "y" || v == "yes", nil
}
