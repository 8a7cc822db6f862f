package renderer

import (
	"strings"

	"report-srv/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	summaryTitle    = "Report Summary"
	summarySubtitle = "Confidential"
	blankValue      = "-"
)

type summaryRow struct {
	Key   string
	Value string
}

// summaryRows lists the key/value pairs printed on every artifact.
func summaryRows(job model.ReportJob) []summaryRow {
	rows := []summaryRow{
		{"Report Type", job.ReportTypeID},
		{"Period", job.Period},
		{"Scope", job.DataScope.Label()},
		{"Category", strings.Join(job.Categories(), ", ")},
		{"Requested By", job.RequestedBy},
		{"Dept (snapshot)", job.DepartmentSnapshot},
		{"Records Included", formatOptional(job.ApprovedCount)},
		{"Total Amount (KRW)", formatOptional(job.ApprovedTotal)},
	}
	for i := range rows {
		if strings.TrimSpace(rows[i].Value) == "" {
			rows[i].Value = blankValue
		}
	}
	return rows
}

func formatOptional(n *int64) string {
	if n == nil {
		return ""
	}
	return formatThousands(*n)
}

var amountPrinter = message.NewPrinter(language.English)

// formatThousands groups digits by three with commas.
func formatThousands(n int64) string {
	return amountPrinter.Sprintf("%d", n)
}
