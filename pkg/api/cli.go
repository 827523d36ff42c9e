package api

import (
	"time"

	"github.com/travigo/dataquality/pkg/api/stats"
	"github.com/travigo/dataquality/pkg/database"
	"github.com/travigo/dataquality/pkg/dataquality"
	"github.com/travigo/dataquality/pkg/metrics"
	"github.com/travigo/dataquality/pkg/ppc"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the data quality web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "observations",
						Usage: "YAML file overriding the weighted observation catalogue",
					},
				},
				Action: func(c *cli.Context) error {
					observations, err := dataquality.LoadCatalogue(c.String("observations"))
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}

					store := dataquality.NewMongoStore()
					collector := &stats.Collector{Source: store, Interval: time.Minute}
					go collector.Run(c.Context)

					server := &Server{
						Reports: store,
						NewScorer: func() dataquality.Scorer {
							return dataquality.NewCalculator(store, store, observations...)
						},
						PPCReports: ppc.NewMongoReportStore(),
						Stats:      collector,
						Metrics:    metrics.New(),
					}

					return server.Listen(c.String("listen"))
				},
			},
		},
	}
}
