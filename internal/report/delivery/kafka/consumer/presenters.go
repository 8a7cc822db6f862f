package consumer

import (
	"report-srv/internal/report"
	kafkaDelivery "report-srv/internal/report/delivery/kafka"
)

func toGenerateInput(m kafkaDelivery.GenerateRequestMessage) report.GenerateInput {
	return report.GenerateInput{
		ReportTypeID: m.ReportTypeID,
		Filters: report.Filters{
			Format:     m.Filters.Format,
			DataScope:  m.Filters.DataScope,
			Department: m.Filters.Department,
			Period:     m.Filters.Period,
			Categories: m.Filters.Categories,
		},
	}
}
