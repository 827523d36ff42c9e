package routes

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/dataquality/pkg/ppc"
	"github.com/travigo/dataquality/pkg/util"
)

func PPCRouter(router fiber.Router, store ppc.ReportStore) {
	router.Get("/feeds/:id/daily/:date", func(c *fiber.Ctx) error {
		feedID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Feed ID must be a number")
		}
		date, err := time.Parse(util.YearMonthDayFormat, c.Params("date"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Date must be formatted YYYY-MM-DD")
		}

		report, err := store.DailyReport(c.UserContext(), feedID, date)
		if errors.Is(err, ppc.ErrDailyReportNotFound) {
			c.Status(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Could not find a daily report for the feed on that date",
			})
		} else if err != nil {
			return err
		}

		return c.JSON(report)
	})

	router.Get("/feeds/:id/weekly", func(c *fiber.Ctx) error {
		feedID, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Feed ID must be a number")
		}

		start, err := time.Parse(util.YearMonthDayFormat, c.Query("start"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start must be formatted YYYY-MM-DD")
		}
		end := start.AddDate(0, 0, 6)
		if c.Query("end") != "" {
			if end, err = time.Parse(util.YearMonthDayFormat, c.Query("end")); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end must be formatted YYYY-MM-DD")
			}
		}

		reports, err := store.DailyReports(c.UserContext(), feedID, start, end)
		if err != nil {
			return err
		}

		var archive bytes.Buffer
		if err := ppc.AggregateWeekly(reports).WriteZip(&archive); err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, "application/zip")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(
			`attachment; filename="ppc_weekly_%d_%s.zip"`, feedID, start.Format(util.YearMonthDayFormat),
		))

		return c.Send(archive.Bytes())
	})
}
