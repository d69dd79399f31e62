package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/always-cache/cookie-expires/rfc6265"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [date...]",
		Short: "Parse cookie-date strings",
		Long: "Parses the given cookie-date strings (or lines from stdin) and prints " +
			"the resulting UTC instants.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return parseAll(args)
			}
			return parseLines(os.Stdin)
		},
	}
	return cmd
}

func parseAll(values []string) error {
	var failures int
	for _, value := range values {
		date, err := rfc6265.ParseCookieDate(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			failures++
			continue
		}
		fmt.Println(date.Format(time.RFC3339))
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d dates could not be parsed", failures, len(values))
	}
	return nil
}

func parseLines(r io.Reader) error {
	values := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		values = append(values, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return parseAll(values)
}
