package services

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MLR-commits/Intranet_BAcademic/models"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/klauspost/compress/gzip"
	"github.com/xuri/excelize/v2"
)

var exportService *ExportService

type ExportService struct{}

// buildSeatingWorkbook lays out one sheet per room with the seat order
func (e *ExportService) buildSeatingWorkbook(
	exam *models.Exam,
	seatings []models.SeatingWLookup,
) *excelize.File {
	file := excelize.NewFile()
	summarySheet := "Resumen"
	file.SetSheetName("Sheet1", summarySheet)
	file.SetCellValue(summarySheet, "A1", "Examen")
	file.SetCellValue(summarySheet, "B1", fmt.Sprintf("%s (%s)", exam.CourseName, exam.CourseCode))
	file.SetCellValue(summarySheet, "A2", "Fecha")
	file.SetCellValue(summarySheet, "B2", exam.Date.Time().Format("02/01/2006"))
	file.SetCellValue(summarySheet, "A3", "Sesión")
	file.SetCellValue(summarySheet, "B3", exam.Session)
	file.SetCellValue(summarySheet, "A4", "Estudiantes")
	file.SetCellValue(summarySheet, "B4", len(seatings))

	rows := make(map[string]int)
	for _, seating := range seatings {
		sheetName := seating.RoomNumber
		if _, exists := rows[sheetName]; !exists {
			file.NewSheet(sheetName)
			file.SetCellValue(sheetName, "A1", "Asiento")
			file.SetCellValue(sheetName, "B1", "Matrícula")
			file.SetCellValue(sheetName, "C1", "Estudiante")
			file.SetCellValue(sheetName, "D1", "Departamento")
			rows[sheetName] = 2
		}
		row := rows[sheetName]
		file.SetCellValue(sheetName, fmt.Sprintf("A%d", row), seating.SeatNumber)
		file.SetCellValue(sheetName, fmt.Sprintf("B%d", row), seating.Student.RollNumber)
		file.SetCellValue(sheetName, fmt.Sprintf("C%d", row), seating.Student.Name)
		file.SetCellValue(sheetName, fmt.Sprintf("D%d", row), seating.Department)
		rows[sheetName] = row + 1
	}
	return file
}

// ExportSeating writes the seating chart of an exam as an xlsx workbook.
// With compress the stream is gzip wrapped
func (e *ExportService) ExportSeating(idExam string, w io.Writer, compress bool) *res.ErrorRes {
	exam, errRes := NewExamService().GetExam(idExam)
	if errRes != nil {
		return errRes
	}
	seatings, errRes := NewSeatingService().GetSeating(idExam)
	if errRes != nil {
		return errRes
	}
	if len(seatings) == 0 {
		return &res.ErrorRes{
			Err:        fmt.Errorf("el examen no tiene asignación de asientos"),
			StatusCode: http.StatusNotFound,
		}
	}
	file := e.buildSeatingWorkbook(exam, seatings)

	if compress {
		gzWriter := gzip.NewWriter(w)
		if err := file.Write(gzWriter); err != nil {
			return &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusInternalServerError,
			}
		}
		if err := gzWriter.Close(); err != nil {
			return &res.ErrorRes{
				Err:        err,
				StatusCode: http.StatusInternalServerError,
			}
		}
		return nil
	}
	if err := file.Write(w); err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	return nil
}

// ExportResultsTemplate writes the empty workbook admins fill to upload a
// result batch
func (e *ExportService) ExportResultsTemplate(w io.Writer) *res.ErrorRes {
	file := excelize.NewFile()
	sheetName := "Resultados"
	file.SetSheetName("Sheet1", sheetName)
	headers := []string{"Matrícula", "Estudiante", "Departamento", "Puntaje", "Estado", "Observaciones"}
	for i, header := range headers {
		column := fmt.Sprintf("%c1", 'A'+i)
		file.SetCellValue(sheetName, column, header)
	}
	if err := file.Write(w); err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	return nil
}

func NewExportService() *ExportService {
	if exportService == nil {
		exportService = &ExportService{}
	}
	return exportService
}
