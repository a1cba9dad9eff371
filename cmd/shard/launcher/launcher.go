package launcher

import (
	"fmt"

	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-asset-shard/flags"
	"github.com/rony4d/go-asset-shard/logger"
)

var app = flags.NewApp()

func init() {
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NetworkFlags()...)
	app.Flags = append(app.Flags, flags.NodeFlags()...)
	app.Commands = []cli.Command{
		rulesCommand,
		epochsCommand,
		inspectCommand,
		hashCommand,
	}
	app.Before = setupLogger
}

// Launch parses the command line and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

func setupLogger(ctx *cli.Context) error {
	if err := logger.SetLevel(verbosityToLevel(ctx.GlobalInt("log.verbosity"))); err != nil {
		return err
	}
	switch format := ctx.GlobalString("log.format"); format {
	case "json":
		logger.SetFormat(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormat(&logrus.TextFormatter{ForceColors: ctx.GlobalBool("log.color")})
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
	return logger.SetDSN(ctx.GlobalString("sentry.dsn"))
}

// verbosityToLevel maps the numeric CLI verbosity onto logrus level names.
func verbosityToLevel(v int) string {
	levels := []string{"fatal", "error", "warning", "info", "debug", "trace"}
	if v < 0 {
		v = 0
	}
	if v >= len(levels) {
		v = len(levels) - 1
	}
	return levels[v]
}
