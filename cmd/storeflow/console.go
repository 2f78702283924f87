package main

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// console reads answers line by line and writes locale-formatted output.
type console struct {
	lines <-chan string
	out   io.Writer
	p     *message.Printer
}

func newConsole(ctx context.Context, in io.Reader, out io.Writer, locale string) *console {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return &console{lines: lines, out: out, p: message.NewPrinter(tag)}
}

// ask prints prompt and returns the trimmed answer. It fails with io.EOF
// when input is exhausted and with the context error on cancellation.
func (c *console) ask(ctx context.Context, prompt string) (string, error) {
	c.printf("%s", prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// askInt reports ok false for an empty or non-numeric answer.
func (c *console) askInt(ctx context.Context, prompt string) (int, bool, error) {
	s, err := c.ask(ctx, prompt)
	if err != nil || s == "" {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(s)
	if convErr != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (c *console) askDecimal(ctx context.Context, prompt string) (decimal.Decimal, bool, error) {
	s, err := c.ask(ctx, prompt)
	if err != nil || s == "" {
		return decimal.Zero, false, err
	}
	d, convErr := decimal.NewFromString(s)
	if convErr != nil {
		return decimal.Zero, false, nil
	}
	return d, true, nil
}

// confirm reports whether the answer matches word, ignoring case.
func (c *console) confirm(ctx context.Context, prompt, word string) (bool, error) {
	s, err := c.ask(ctx, prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(s, word), nil
}

func (c *console) printf(format string, args ...any) {
	c.p.Fprintf(c.out, format, args...)
}

func (c *console) println(args ...any) {
	c.p.Fprintln(c.out, args...)
}

func (c *console) banner(title string, width int) {
	rule := strings.Repeat("=", width)
	c.printf("\n%s\n%s\n%s\n", rule, title, rule)
}

func (c *console) money(d decimal.Decimal) string {
	return c.p.Sprintf("$%.2f", d.InexactFloat64())
}
