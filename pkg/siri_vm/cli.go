package siri_vm

import (
	"errors"
	"os"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func parseFileArgument(c *cli.Context) (*Siri, error) {
	if c.Args().Len() != 1 {
		return nil, errors.New("expected a single SIRI-VM file argument")
	}

	file, err := os.Open(c.Args().First())
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseXML(file)
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "siri-vm",
		Usage: "Read SIRI-VM vehicle monitoring documents",
		Subcommands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "parse a document and summarise its vehicle activities",
				ArgsUsage: "<siri-vm file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "print every parsed vehicle activity",
					},
				},
				Action: func(c *cli.Context) error {
					siri, err := parseFileArgument(c)
					if err != nil {
						return err
					}

					header := siri.Header()
					log.Info().
						Str("version", header.Version).
						Str("producer", header.ProducerRef).
						Time("response_timestamp", header.ServiceDeliveryResponseTimestamp).
						Int("activities", len(siri.VehicleActivities())).
						Msg("Parsed SIRI-VM document")

					if c.Bool("dump") {
						for _, activity := range siri.VehicleActivities() {
							pretty.Println(activity)
						}
					}

					return nil
				},
			},
			{
				Name:      "validate",
				Usage:     "check a document has every required element",
				ArgsUsage: "<siri-vm file>",
				Action: func(c *cli.Context) error {
					if _, err := parseFileArgument(c); err != nil {
						return err
					}

					log.Info().Str("file", c.Args().First()).Msg("SIRI-VM document is valid")

					return nil
				},
			},
		},
	}
}
