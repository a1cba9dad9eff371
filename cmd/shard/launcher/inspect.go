package launcher

import (
	"fmt"
	"strconv"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common/hexutil"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-asset-shard/epochdb"
	"github.com/rony4d/go-asset-shard/inter/iepochstats"
)

var (
	rulesCommand = cli.Command{
		Action:   printRules,
		Name:     "rules",
		Usage:    "Print the rules of the selected network",
		Category: "AGGREGATOR COMMANDS",
	}
	epochsCommand = cli.Command{
		Action:   listEpochs,
		Name:     "epochs",
		Usage:    "List the epochs with a stored aggregator checkpoint",
		Category: "AGGREGATOR COMMANDS",
	}
	inspectCommand = cli.Command{
		Action:    inspectCheckpoint,
		Name:      "inspect",
		Usage:     "Print the aggregator checkpoint of an epoch",
		ArgsUsage: "[<epoch>]",
		Category:  "AGGREGATOR COMMANDS",
		Description: `
Prints the stored aggregator checkpoint of the given epoch as JSON.
Without an argument the latest checkpoint is printed.`,
	}
	hashCommand = cli.Command{
		Action:    hashCheckpoint,
		Name:      "hash",
		Usage:     "Print the canonical hash of an epoch checkpoint",
		ArgsUsage: "[<epoch>]",
		Category:  "AGGREGATOR COMMANDS",
	}
)

func printRules(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.Writer, cfg.Asset.Rules.String())
	return nil
}

func listEpochs(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	db, err := epochdb.Open(cfg.DB.Path, cfg.DB.Preset.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	epochs, err := db.Epochs()
	if err != nil {
		return err
	}
	for _, epoch := range epochs {
		fmt.Fprintln(app.Writer, epoch)
	}
	return nil
}

func inspectCheckpoint(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	db, err := epochdb.Open(cfg.DB.Path, cfg.DB.Preset.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := requestedCheckpoint(db, ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.Writer, a.String())
	return nil
}

func hashCheckpoint(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	db, err := epochdb.Open(cfg.DB.Path, cfg.DB.Preset.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := requestedCheckpoint(db, ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.Writer, hexutil.Bytes(a.Hash().Bytes()).String())
	return nil
}

// requestedCheckpoint loads the checkpoint addressed by the first CLI
// argument, or the latest one when no argument is given.
func requestedCheckpoint(db *epochdb.Store, ctx *cli.Context) (*iepochstats.Aggregator, error) {
	if arg := ctx.Args().First(); arg != "" {
		epoch, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid epoch %q: %w", arg, err)
		}
		return db.LoadCheckpoint(idx.Epoch(epoch))
	}
	return db.LatestCheckpoint()
}
