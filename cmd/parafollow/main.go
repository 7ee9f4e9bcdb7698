// Copyright 2021 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Command parafollow wires a parachain-follower driver up against a relay
// and parachain client and runs it until interrupted. The client
// implementations here are no-op stand-ins; an embedding node replaces
// them with its own transport, the same way it would supply its own
// PbftAgentFetcher to abey/fetcher.New.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/parastream/parafollow/common"
	"github.com/parastream/parafollow/log"
	"github.com/parastream/parafollow/parafollow"

	"gopkg.in/urfave/cli.v1"
)

var (
	paraIDFlag = cli.UintFlag{
		Name:  "para-id",
		Usage: "parachain ID to follow",
		Value: 2000,
	}
	slotDurationFlag = cli.DurationFlag{
		Name:  "relay-slot-duration",
		Usage: "relay chain slot duration, used as the candidate recovery jitter bound",
		Value: 6 * time.Second,
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log verbosity: 0=error,1=warn,2=info,3=debug,4=trace",
		Value: int(log.LvlInfo),
	}

	runCommand = cli.Command{
		Name:   "run",
		Usage:  "run the parachain follower against its configured relay and parachain clients",
		Flags:  []cli.Flag{paraIDFlag, slotDurationFlag, verbosityFlag},
		Action: runAction,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "parafollow"
	app.Usage = "relay-chain-driven parachain consensus follower"
	app.Commands = []cli.Command{runCommand}
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAction(ctx *cli.Context) error {
	log.SetLevel(log.Lvl(ctx.Int(verbosityFlag.Name)))

	paraID := common.ParaID(ctx.Uint(paraIDFlag.Name))
	cfg := parafollow.Config{RelayChainSlotDuration: ctx.Duration(slotDurationFlag.Name)}

	driver := parafollow.New(paraID, &stubRelaychainClient{}, &stubParachainClient{}, &stubAnnouncer{}, stubHeaderDecoder, &stubAvailabilityRecovery{}, cfg)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("Received shutdown signal")
		cancel()
	}()

	parafollow.Run(runCtx, driver)
	return nil
}
