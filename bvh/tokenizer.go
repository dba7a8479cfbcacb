package bvh

import (
	"bufio"
	"io"
	"strings"
)

const maxLineLength = 64 << 20

// split splits a line into whitespace separated tokens.
func split(line string) []string {
	return strings.Fields(line)
}

type lineReader struct {
	s    *bufio.Scanner
	line int
	text string
}

func newLineReader(r io.Reader) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &lineReader{s: s}
}

// next returns tokens of the next line. ok is false at the end of input.
func (r *lineReader) next() (tokens []string, ok bool, err error) {
	if !r.s.Scan() {
		return nil, false, r.s.Err()
	}
	r.line++
	r.text = r.s.Text()
	return split(r.text), true, nil
}

// nextTokens is next for lines that must exist.
func (r *lineReader) nextTokens() ([]string, error) {
	tokens, ok, err := r.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ParseError{Line: r.line + 1, Err: ErrUnexpectedEOF}
	}
	return tokens, nil
}

func (r *lineReader) errorf(err error, detail string) error {
	return &ParseError{Line: r.line, Text: strings.TrimSpace(r.text), Err: err, Detail: detail}
}
