// SPDX-License-Identifier: EPL-2.0

// Command harmony generates clips, prepares training audio and inspects
// audio files.
//
//	harmony generate -prompt "calm piano with strings" [-duration 5s] [-style date]
//	harmony convert [-rate 24000] input.mp3 [output.wav]
//	harmony inspect [-raw] clip.wav
//	harmony formats
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/harmony-ai/audiokit/config"
	"github.com/harmony-ai/audiokit/history"
)

const usage = `usage: harmony <command> [flags] [args]

commands:
  generate   synthesize a clip from a prompt and save it as WAV
  convert    resample an audio file to mono at the model rate
  inspect    print format details and a level overview of a file
  formats    list the input formats convert and inspect accept
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func newLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetLevel(level)
	return logger
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		newLogger(stderr, logrus.InfoLevel).WithError(err).Error("Failed to load configuration")
		return 1
	}
	logger := newLogger(stderr, cfg.LogLevel)

	app := &app{cfg: cfg, log: logger, out: stdout, errOut: stderr, history: history.NewStore()}

	var cmd func(context.Context, []string) error
	switch args[0] {
	case "generate":
		cmd = app.generate
	case "convert":
		cmd = app.convert
	case "inspect":
		cmd = app.inspect
	case "formats":
		cmd = app.formats
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err := cmd(ctx, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
			return 2
		}
		logger.WithError(err).WithField("command", args[0]).Error("Command failed")
		return 1
	}

	return 0
}
