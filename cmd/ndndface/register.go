package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/named-data/ndndface/config"
	"github.com/named-data/ndndface/cst"
	"github.com/named-data/ndndface/engine"
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/utils"
	"github.com/named-data/ndndface/wire"
)

type registerCmd struct {
	content string
}

// CmdRegister builds the "register PREFIX" subcommand: register prefix
// with the configured forwarder and answer every matching Interest with
// a fixed Data payload until interrupted, ported from tools/
// pingclient.go's signal-driven run loop.
func CmdRegister() *cobra.Command {
	rc := &registerCmd{}
	cmd := &cobra.Command{
		Use:     "register PREFIX",
		Short:   "Register a prefix and serve Interests under it",
		Args:    cobra.ExactArgs(1),
		Example: "  ndndface register /my/prefix --content hello",
		RunE:    rc.run,
	}
	cmd.Flags().StringVar(&rc.content, "content", "ok", "Data payload to reply with")
	return cmd
}

func (rc *registerCmd) String() string { return "register" }

func (rc *registerCmd) run(_ *cobra.Command, args []string) error {
	prefix, err := enc.NameFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid prefix %q: %w", args[0], err)
	}

	settings := config.Defaults()
	if configPath != "" {
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	f, err := engine.NewFace(settings.Options()...)
	if err != nil {
		return fmt.Errorf("building face: %w", err)
	}

	content := []byte(rc.content)
	f.RegisterPrefix(prefix, func(it *wire.Interest) (cst.InterestDirective, *wire.Data) {
		fmt.Printf("serving %s\n", it.Name.String())
		return cst.InterestConsumed, &wire.Data{Name: it.Name, Content: content}
	}, 0)

	fmt.Printf("registered %s, serving %q; ctrl-c to stop, SIGUSR1 for a goroutine dump\n", prefix.String(), rc.content)
	dumpchan := make(chan os.Signal, 1)
	signal.Notify(dumpchan, syscall.SIGUSR1)
	go func() {
		for range dumpchan {
			utils.PrintStackTrace()
		}
	}()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)
	<-sigchan

	return f.Close()
}
