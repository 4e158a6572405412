package main

import (
	"fmt"
	"strings"

	"github.com/customs-bot/customs"
)

// Run executes the calc command.
func (c *CalcCmd) Run(deps *Dependencies) error {
	attrs := deps.Extractor.Extract(c.Text)
	if attrs == nil || attrs.Empty() {
		return fmt.Errorf("no vehicle attributes recognized in %q", c.Text)
	}

	breakdown, err := deps.Calculator.Calculate(attrs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", customs.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, plainText(customs.FormatAttributes(attrs)))
	fmt.Fprintln(deps.Stdout, plainText(customs.FormatBreakdown(breakdown)))

	return nil
}

// tagStripper removes the chat markup from formatted output for
// terminal display.
var tagStripper = strings.NewReplacer(
	"<b>", "", "</b>", "",
	"<i>", "", "</i>", "",
	"<code>", "", "</code>", "",
)

func plainText(s string) string {
	return tagStripper.Replace(s)
}
