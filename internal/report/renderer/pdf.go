package renderer

import (
	"context"

	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

func (r *implRenderer) renderPDF(ctx context.Context, path string, rows []summaryRow) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(17, 20, 17)
	m.SetBorder(false)

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(summaryTitle, props.Text{
				Size:  16,
				Style: consts.Bold,
				Align: consts.Left,
			})
		})
	})
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(summarySubtitle, props.Text{
				Size:  10,
				Style: consts.Italic,
				Align: consts.Left,
			})
		})
	})
	m.Row(6, func() {})

	for _, row := range rows {
		m.Row(7, func() {
			m.Col(4, func() {
				m.Text(row.Key, props.Text{Size: 11, Style: consts.Bold})
			})
			m.Col(8, func() {
				m.Text(row.Value, props.Text{Size: 11})
			})
		})
	}

	if err := m.OutputFileAndClose(path); err != nil {
		r.l.Errorf(ctx, "report.renderer.renderPDF: %v", err)
		return err
	}
	return nil
}
