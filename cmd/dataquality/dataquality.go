package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/dataquality/pkg/api"
	"github.com/travigo/dataquality/pkg/dataquality"
	"github.com/travigo/dataquality/pkg/ppc"
	"github.com/travigo/dataquality/pkg/siri_vm"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("TRAVIGO_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRAVIGO_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "dataquality",
		Description: "Timetable data quality scores and post publishing checks of SIRI-VM feeds",

		Commands: []*cli.Command{
			dataquality.RegisterCLI(),
			ppc.RegisterCLI(),
			siri_vm.RegisterCLI(),
			api.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
