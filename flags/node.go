package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NodeFlags holds knobs specific to the local node instance.
func NodeFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "identity",
			Usage: "Custom node name used in logs",
		},
		cli.StringFlag{
			Name:  "datadir.epochdb",
			Usage: "Override path to the epoch checkpoint DB (defaults to <datadir>/epochdb)",
		},
		cli.StringFlag{
			Name:  "db.preset",
			Usage: "Epoch DB tuning preset (default|lite|full|archive)",
		},
	}
}
