package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/named-data/ndndface/config"
	"github.com/named-data/ndndface/engine"
	enc "github.com/named-data/ndndface/std/encoding"
	"github.com/named-data/ndndface/std/log"
	"github.com/named-data/ndndface/std/ndn"
	"github.com/named-data/ndndface/wire"
)

type expressCmd struct {
	timeoutMs int
}

// CmdExpress builds the "express NAME" subcommand: send a single
// Interest and print the outcome, mirroring tools/pingclient.go's
// single-send-and-report shape without the periodic ticker.
func CmdExpress() *cobra.Command {
	ec := &expressCmd{}
	cmd := &cobra.Command{
		Use:     "express NAME",
		Short:   "Express a single Interest and print the result",
		Args:    cobra.ExactArgs(1),
		Example: "  ndndface express /my/prefix/data",
		RunE:    ec.run,
	}
	cmd.Flags().IntVarP(&ec.timeoutMs, "timeout", "t", 4000, "interest lifetime, in milliseconds")
	return cmd
}

func (ec *expressCmd) String() string { return "express" }

func (ec *expressCmd) run(_ *cobra.Command, args []string) error {
	name, err := enc.NameFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid name %q: %w", args[0], err)
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

	done := make(chan struct{})
	f.ExpressInterest(name, func(result ndn.InterestResult, data *wire.Data) ndn.SinkDirective {
		defer close(done)
		switch result {
		case ndn.InterestResultTimeout:
			fmt.Printf("timeout: %s\n", name)
		case ndn.InterestResultBadSignature:
			fmt.Printf("bad signature: %s\n", name)
		default:
			fmt.Printf("%s: %s, %d bytes\n", result, data.Name.String(), len(data.Content))
		}
		return ndn.SinkDone
	}, &wire.Interest{InterestLifetime: time.Duration(ec.timeoutMs) * time.Millisecond})

	select {
	case <-done:
	case <-time.After(time.Duration(ec.timeoutMs)*time.Millisecond + time.Second):
		log.Warn(ec, "no result delivered before the CLI's own grace period elapsed")
	}
	_ = f.Close() // best-effort: the Face may never have reached Opened
	return nil
}
