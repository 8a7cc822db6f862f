package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/pkg/log"

	"github.com/jung-kurt/gofpdf"
)

// pdfEpoch is stamped as CreationDate and ModDate on every PDF.
var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var pdfDefaultsOnce sync.Once

type implRenderer struct {
	l log.Logger
}

// New returns a Renderer that writes PDF through maroto and EXCEL through excelize.
// Output bytes depend only on the job content, so equal reports hash equal.
func New(l log.Logger) report.Renderer {
	pdfDefaultsOnce.Do(func() {
		gofpdf.SetDefaultCatalogSort(true)
		gofpdf.SetDefaultCreationDate(pdfEpoch)
		gofpdf.SetDefaultModificationDate(pdfEpoch)
	})
	return &implRenderer{l: l}
}

func (r *implRenderer) Render(ctx context.Context, path string, job model.ReportJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := summaryRows(job)

	switch job.OutputFormat {
	case model.OutputFormatPDF:
		return r.renderPDF(ctx, path, rows)
	case model.OutputFormatExcel:
		return r.renderExcel(ctx, path, rows)
	default:
		return fmt.Errorf("renderer: unsupported format %q", job.OutputFormat)
	}
}
