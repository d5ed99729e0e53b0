package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lox/landlord/internal/game"
)

// LinePrompter asks purchase questions on a plain terminal and answers
// synchronously.
type LinePrompter struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan readResult
}

type readResult struct {
	line string
	err  error
}

// NewLinePrompter reads answers from in and writes questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// readLines starts the single reader goroutine on first use. A read that is
// still blocked when a prompt is abandoned is delivered to the next prompt.
func (p *LinePrompter) readLines() <-chan readResult {
	p.once.Do(func() {
		p.lines = make(chan readResult)
		go func() {
			defer close(p.lines)
			for {
				line, err := p.in.ReadString('\n')
				p.lines <- readResult{line: line, err: err}
				if err != nil {
					return
				}
			}
		}()
	})
	return p.lines
}

// PromptPurchase keeps asking until it gets a yes or no. End of input
// counts as no. If ctx is cancelled first it returns without answering.
func (p *LinePrompter) PromptPurchase(ctx context.Context, req game.PurchaseRequest, resume game.Resume) {
	lines := p.readLines()
	for {
		fmt.Fprintf(p.out, "%s, buy cell %d for $%d (rent $%d, balance $%d)? [y/n] ",
			req.Name, req.Cell.Index, req.Cell.Price, req.Cell.Rent, req.Balance)

		var r readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return
		case got, ok := <-lines:
			r = got
			if !ok {
				r.err = io.EOF
			}
		}

		if answer, ok := parseAnswer(r.line); ok {
			_ = resume(answer)
			return
		}
		if r.err != nil {
			fmt.Fprintln(p.out)
			_ = resume(false)
			return
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

func parseAnswer(line string) (buy, ok bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "b", "buy":
		return true, true
	case "n", "no", "p", "pass":
		return false, true
	}
	return false, false
}

// Printer writes one narrated line per event.
type Printer struct {
	out      io.Writer
	source   Snapshotter
	styled   bool
	narrator *Narrator
}

// NewPrinter narrates events to out, naming players from source.
func NewPrinter(out io.Writer, source Snapshotter, styled bool) *Printer {
	return &Printer{out: out, source: source, styled: styled}
}

func (p *Printer) OnEvent(event game.GameEvent) {
	if p.narrator == nil {
		p.narrator = NewNarrator(p.source.Players(), p.styled)
	}
	if line := p.narrator.Describe(event); line != "" {
		fmt.Fprintln(p.out, line)
	}
}
