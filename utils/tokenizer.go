package utils

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Tokenizer returns the whitespace separated fields of each data line, skipping blank lines and '#' comments
type Tokenizer struct {
	scanner *bufio.Scanner
	name    string
	line    int
}

func NewTokenizer(r io.Reader, name string) (tk *Tokenizer) {
	tk = &Tokenizer{
		scanner: bufio.NewScanner(r),
		name:    name,
	}
	return
}

// Next returns io.EOF once no data lines remain
func (tk *Tokenizer) Next() (toks []string, err error) {
	for tk.scanner.Scan() {
		tk.line++
		line := tk.scanner.Text()
		if ind := strings.Index(line, "#"); ind >= 0 {
			line = line[:ind]
		}
		if toks = strings.Fields(line); len(toks) != 0 {
			return
		}
	}
	if err = tk.scanner.Err(); err == nil {
		err = io.EOF
	}
	return
}

// MustNext is Next for callers expecting more data, hitting the end is an error
func (tk *Tokenizer) MustNext(minToks int) (toks []string, err error) {
	if toks, err = tk.Next(); err != nil {
		if err == io.EOF {
			err = tk.Errorf("early end of file")
		}
		return
	}
	if len(toks) < minToks {
		err = tk.Errorf("have %d fields, need at least %d", len(toks), minToks)
	}
	return
}

// Errorf decorates the message with the source name and current line
func (tk *Tokenizer) Errorf(format string, args ...interface{}) error {
	return errors.Errorf("%s:%d: %s", tk.name, tk.line, fmt.Sprintf(format, args...))
}

// Wrap adds the source name and current line to err
func (tk *Tokenizer) Wrap(err error) error {
	return errors.Wrapf(err, "%s:%d", tk.name, tk.line)
}

func (tk *Tokenizer) Int(tok string) (i int, err error) {
	if i, err = strconv.Atoi(tok); err != nil {
		err = tk.Wrap(err)
	}
	return
}

func (tk *Tokenizer) Float(tok string) (f float64, err error) {
	if f, err = strconv.ParseFloat(tok, 64); err != nil {
		err = tk.Wrap(err)
	}
	return
}

// Ints converts every token, stopping at the first failure
func (tk *Tokenizer) Ints(toks []string) (vals []int, err error) {
	vals = make([]int, len(toks))
	for i, tok := range toks {
		if vals[i], err = tk.Int(tok); err != nil {
			return nil, err
		}
	}
	return
}
