package core

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Scanner 按组码/值成对读取 DXF 标签流
type Scanner struct {
	scanner *bufio.Scanner
	LastTag Tag
	err     error
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		scanner: bufio.NewScanner(r),
	}
}

func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}

	// 1. 读取 Code 行，跳过空行
	var codeStr string
	for {
		if !s.scanner.Scan() {
			s.err = s.scanner.Err()
			return false
		}
		codeStr = strings.TrimSpace(s.scanner.Text())
		if codeStr != "" {
			break
		}
	}

	code, err := strconv.Atoi(codeStr)
	if err != nil {
		s.err = err
		return false
	}

	// 2. 读取 Value 行，Code 行之后必须有 Value 行
	if !s.scanner.Scan() {
		if s.err = s.scanner.Err(); s.err == nil {
			s.err = io.ErrUnexpectedEOF
		}
		return false
	}

	// 保留 Value 开头的空格（DXF 规范要求），只去掉行尾回车
	value := strings.TrimRight(s.scanner.Text(), "\r")

	s.LastTag = Tag{Code: code, Value: value}
	return true
}

func (s *Scanner) Err() error {
	return s.err
}
