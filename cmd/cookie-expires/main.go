package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbosityTraceFlag bool

func main() {
	root := &cobra.Command{
		Use:   "cookie-expires",
		Short: "Lenient cookie Expires attribute parsing",
		Long: "Parses cookie Expires attribute values with the cookie-date algorithm " +
			"of RFC 6265 and inspects the expiry times servers actually send.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel := zerolog.DebugLevel
			if verbosityTraceFlag {
				logLevel = zerolog.TraceLevel
			}
			log.Logger = log.Level(logLevel).Output(zerolog.ConsoleWriter{Out: os.Stdout})
		},
	}
	root.PersistentFlags().BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")

	root.AddCommand(parseCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
