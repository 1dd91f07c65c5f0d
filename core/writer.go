package core

import (
	"bufio"
	"io"
	"strconv"
)

// Writer 按组码/值成对输出 DXF 标签流，与 Scanner 互逆
type Writer struct {
	writer *bufio.Writer
	err    error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: bufio.NewWriter(w),
	}
}

// WriteTag 输出一组标签对，出错后续调用直接忽略
func (w *Writer) WriteTag(t Tag) {
	if w.err != nil {
		return
	}
	if _, err := w.writer.WriteString(strconv.Itoa(t.Code) + "\n" + t.Value + "\n"); err != nil {
		w.err = err
	}
}

// WriteTags 按顺序输出多组标签对
func (w *Writer) WriteTags(tags ...Tag) {
	for _, t := range tags {
		w.WriteTag(t)
	}
}

// Flush 刷新缓冲并返回首个写入错误
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.writer.Flush()
}

func (w *Writer) Err() error {
	return w.err
}
