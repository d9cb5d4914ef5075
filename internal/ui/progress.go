package ui

import (
	"fmt"
	"io"
	"strings"
)

// ProgressBar shows a simple progress bar
type ProgressBar struct {
	total   int
	current int
	width   int
	writer  io.Writer
	label   string
	// step limits redraws on large lists.
	step int
}

// NewProgressBar creates a progress bar writing to w.
func NewProgressBar(w io.Writer, total int, label string) *ProgressBar {
	step := total / 100
	if step < 1 {
		step = 1
	}
	return &ProgressBar{
		total:  total,
		width:  40,
		writer: w,
		label:  label,
		step:   step,
	}
}

// Update moves the bar to current, redrawing on every step and at the end.
func (p *ProgressBar) Update(current int) {
	if current > p.total {
		current = p.total
	}
	p.current = current
	if p.current%p.step != 0 && p.current != p.total {
		return
	}
	p.render()
}

// Increment increments the progress by 1
func (p *ProgressBar) Increment() {
	p.Update(p.current + 1)
}

func (p *ProgressBar) render() {
	percent := 100.0
	if p.total > 0 {
		percent = float64(p.current) / float64(p.total) * 100
	}

	if !IsTerminal() {
		// Only the final state for non-terminals
		if p.current >= p.total {
			fmt.Fprintf(p.writer, "%s: %s/%s (%.1f%%)\n", p.label, FormatCount(p.current), FormatCount(p.total), percent)
		}
		return
	}

	filled := p.width
	if p.total > 0 {
		filled = int(float64(p.width) * float64(p.current) / float64(p.total))
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	fmt.Fprintf(p.writer, "\r%s [%s] %s/%s (%.1f%%)", p.label, bar, FormatCount(p.current), FormatCount(p.total), percent)

	if p.current >= p.total {
		fmt.Fprintln(p.writer)
	}
}
