package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags selects the network whose rules the commands run under.
func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "testnet",
			Usage: "Use the testnet rules instead of the main network",
		},
		cli.BoolFlag{
			Name:  "fakenet",
			Usage: "Use the fakenet rules (deterministic local network)",
		},
	}
}
