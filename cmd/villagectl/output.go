package main

import (
	"io"

	"github.com/fatih/color"
)

var titleColor = color.New(color.FgCyan, color.Bold)

func header(w io.Writer, title string) {
	titleColor.Fprintf(w, "\n%s\n", title)
}
