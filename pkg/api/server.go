package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/travigo/dataquality/pkg/api/routes"
	"github.com/travigo/dataquality/pkg/api/stats"
	"github.com/travigo/dataquality/pkg/dataquality"
	"github.com/travigo/dataquality/pkg/metrics"
	"github.com/travigo/dataquality/pkg/ppc"
)

type Server struct {
	Reports    routes.DataQualityReports
	NewScorer  func() dataquality.Scorer
	PPCReports ppc.ReportStore
	Stats      *stats.Collector
	Metrics    *metrics.Metrics
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	c.Status(code)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (s *Server) App() *fiber.App {
	webApp := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})
	webApp.Use(NewLogger(s.Metrics))

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)
	group.Get("stats", routes.Stats(s.Stats))
	if s.Metrics != nil {
		group.Get("metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	routes.DataQualityRouter(group.Group("/dataquality"), s.Reports, s.NewScorer)
	routes.SiriVMRouter(group.Group("/siri-vm"))
	routes.PPCRouter(group.Group("/ppc"), s.PPCReports)

	return webApp
}

func (s *Server) Listen(listen string) error {
	return s.App().Listen(listen)
}
