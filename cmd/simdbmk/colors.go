package main

import (
	"fmt"
	"io"
	"os"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiCyan   = "\x1b[36m"
)

// printer writes progress lines, colored unless disabled.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer, noColor bool) *printer {
	_, envOff := os.LookupEnv("NO_COLOR")
	return &printer{w: w, color: !noColor && !envOff}
}

func (p *printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p *printer) title(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint(ansiBold+ansiBlue, "-- "+fmt.Sprintf(format, args...)+" --"))
}

func (p *printer) info(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) ok(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint(ansiGreen, "  - "+fmt.Sprintf(format, args...)))
}

func (p *printer) warn(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint(ansiYellow, fmt.Sprintf(format, args...)))
}

func (p *printer) fail(format string, args ...any) {
	fmt.Fprintln(p.w, p.paint(ansiBold+ansiRed, "  - "+fmt.Sprintf(format, args...)))
}

func (p *printer) value(s string) string {
	return p.paint(ansiCyan, s)
}
