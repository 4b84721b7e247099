package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cephsafedisk/cmd/ceph-safe-disk/cmdutil"
	"cephsafedisk/internal/logging"
)

const name = "ceph-safe-disk"

func main() {
	if err := logging.Configure(logging.Options{Level: logging.LevelWarn}); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(cmdutil.ExitError)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRoot(&cmdutil.Options{}).ExecuteContext(ctx)
	cancel()

	code, show := cmdutil.ExitCode(err)
	if show {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
	}
	os.Exit(code)
}
