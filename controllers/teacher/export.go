package teacherController

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"sprout/database"
	"sprout/middleware"
	"sprout/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ExportProgress streams the class progress report as CSV (default) or XLSX
func ExportProgress(c *fiber.Ctx) error {
	teacher := c.Locals("user").(*models.User)
	classID := c.Locals("classID").(uint)
	format := c.Locals("exportFormat").(string)

	class, err := loadOwnedClass(database.Database.Db, classID, teacher.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	reports, courses, err := buildGradebook(class.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build progress report!", nil)
	}

	header := []string{"First Name", "Last Name", "Email", "Total XP"}
	for _, course := range courses {
		header = append(header,
			course.Title+" Progress (%)",
			course.Title+" Status",
			course.Title+" Grade",
		)
	}

	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		row := []string{
			report.FirstName,
			report.LastName,
			report.Email,
			strconv.Itoa(report.TotalPoints),
		}
		for _, course := range report.Courses {
			grade := ""
			if course.Grade != nil {
				grade = strconv.Itoa(*course.Grade)
			}
			row = append(row,
				fmt.Sprintf("%.0f", course.Progress),
				course.Status,
				grade,
			)
		}
		rows = append(rows, row)
	}

	filename := fmt.Sprintf("progress-report-class-%d", class.ID)

	if format == "xlsx" {
		return exportXLSX(c, filename, header, rows)
	}
	return exportCSV(c, filename, header, rows)
}

func exportCSV(c *fiber.Ctx, filename string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to write report!", nil)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to write report!", nil)
		}
	}
	writer.Flush()

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`.csv"`)
	return c.Send(buf.Bytes())
}

func exportXLSX(c *fiber.Ctx, filename string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Progress"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for r, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to write report!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`.xlsx"`)
	return c.Send(buf.Bytes())
}
