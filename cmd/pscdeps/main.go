package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/pscdeps/internal/cli"
	pscerrors "github.com/matzehuels/pscdeps/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", message(err))
		os.Exit(1)
	}
}

// message drops the error code prefix for coded errors the user caused
// and keeps the full chain otherwise.
func message(err error) string {
	switch pscerrors.GetCode(err) {
	case pscerrors.ErrCodeInvalidInput, pscerrors.ErrCodeInvalidPackage,
		pscerrors.ErrCodeInvalidFormat, pscerrors.ErrCodeInvalidConfig:
		return pscerrors.UserMessage(err)
	}
	return err.Error()
}
