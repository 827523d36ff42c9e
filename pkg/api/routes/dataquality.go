package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/dataquality/pkg/dataquality"
)

type DataQualityReports interface {
	Report(ctx context.Context, reportID int) (*dataquality.Report, error)
	dataquality.ScoreStore
}

func DataQualityRouter(router fiber.Router, reports DataQualityReports, newScorer func() dataquality.Scorer) {
	router.Get("/reports/:id/rag", func(c *fiber.Ctx) error {
		report, rag, err := reportRAG(c, reports, newScorer)
		if err != nil {
			return err
		}

		if rag == nil {
			c.Status(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Data quality score is unavailable for this report",
			})
		}

		return c.JSON(fiber.Map{
			"report_id":  report.ID,
			"score":      rag.Score,
			"rag_level":  rag.Level,
			"indicator":  rag.Indicator,
			"percentage": rag.Percentage(),
		})
	})

	router.Get("/reports/:id/score", func(c *fiber.Ctx) error {
		report, _, err := reportRAG(c, reports, newScorer)
		if err != nil {
			return err
		}

		groups := []string{"basic"}
		if c.QueryBool("detailed", false) {
			groups = append(groups, "detailed")
		}

		reportReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: groups,
		}, report)
		if err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sheriff could not reduce Report",
			})
		}

		return c.JSON(reportReduced)
	})
}

// reportRAG loads the report and makes sure it has a score. A nil RAG means the score could not be calculated.
func reportRAG(c *fiber.Ctx, reports DataQualityReports, newScorer func() dataquality.Scorer) (*dataquality.Report, *dataquality.RAG, error) {
	reportID, err := c.ParamsInt("id")
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Report ID must be a number")
	}

	report, err := reports.Report(c.UserContext(), reportID)
	if errors.Is(err, dataquality.ErrReportNotFound) {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Could not find data quality report matching ID")
	} else if err != nil {
		return nil, nil, err
	}

	rag, err := dataquality.GetDataQualityRAG(c.UserContext(), report, newScorer(), reports)
	if err != nil {
		return nil, nil, err
	}

	return report, rag, nil
}
