package renderer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"report-srv/internal/model"
	"report-srv/pkg/log"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleJob(format model.OutputFormat) model.ReportJob {
	total, count := int64(1240000), int64(42)
	return model.ReportJob{
		ID:            "job-1",
		RequestedBy:   "2",
		ReportTypeID:  "EXPENSE_APPROVED_SUMMARY_PDF",
		Period:        "2025-06",
		DataScope:     model.DataScopeDept,
		CategoryJSON:  []byte(`["Travel","Meals"]`),
		OutputFormat:  format,
		ApprovedTotal: &total,
		ApprovedCount: &count,
	}
}

func TestSummaryRows(t *testing.T) {
	rows := summaryRows(sampleJob(model.OutputFormatPDF))
	require.Len(t, rows, 8)

	got := map[string]string{}
	for _, r := range rows {
		got[r.Key] = r.Value
	}
	require.Equal(t, "Department", got["Scope"])
	require.Equal(t, "Travel, Meals", got["Category"])
	require.Equal(t, "-", got["Dept (snapshot)"])
	require.Equal(t, "42", got["Records Included"])
	require.Equal(t, "1,240,000", got["Total Amount (KRW)"])
}

func TestSummaryRows_NoAggregation(t *testing.T) {
	job := model.ReportJob{ReportTypeID: "PERSONAL_SUMMARY_PDF", DataScope: model.DataScopeMy, RequestedBy: "2"}
	for _, r := range summaryRows(job) {
		if r.Key == "Records Included" || r.Key == "Total Amount (KRW)" || r.Key == "Period" {
			require.Equal(t, "-", r.Value, r.Key)
		}
	}
}

func TestFormatThousands(t *testing.T) {
	tcs := map[int64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		1240000:    "1,240,000",
		-1234567:   "-1,234,567",
		1000000000: "1,000,000,000",
	}
	for in, want := range tcs {
		require.Equal(t, want, formatThousands(in))
	}
}

func TestRender_PDFIsDeterministic(t *testing.T) {
	r := New(log.NewNop())
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")

	require.NoError(t, r.Render(context.Background(), a, sampleJob(model.OutputFormatPDF)))
	require.NoError(t, r.Render(context.Background(), b, sampleJob(model.OutputFormatPDF)))

	first, err := os.ReadFile(a)
	require.NoError(t, err)
	second, err := os.ReadFile(b)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(first, []byte("%PDF")))
	require.Equal(t, first, second)
}

func TestRender_Excel(t *testing.T) {
	r := New(log.NewNop())
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, r.Render(context.Background(), path, sampleJob(model.OutputFormatExcel)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 9)
	require.Equal(t, []string{"Key", "Value"}, rows[0])
	require.Equal(t, []string{"Report Type", "EXPENSE_APPROVED_SUMMARY_PDF"}, rows[1])
	require.Equal(t, []string{"Total Amount (KRW)", "1,240,000"}, rows[8])
}

func TestRender_ContentChangesBytes(t *testing.T) {
	r := New(log.NewNop())
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.xlsx")

	other := sampleJob(model.OutputFormatExcel)
	other.Period = "2025-05"

	require.NoError(t, r.Render(context.Background(), a, sampleJob(model.OutputFormatExcel)))
	require.NoError(t, r.Render(context.Background(), b, other))

	first, err := os.ReadFile(a)
	require.NoError(t, err)
	second, err := os.ReadFile(b)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestRender_UnknownFormat(t *testing.T) {
	r := New(log.NewNop())
	err := r.Render(context.Background(), filepath.Join(t.TempDir(), "x"), sampleJob("CSV"))
	require.Error(t, err)
}

func TestRender_CanceledContext(t *testing.T) {
	r := New(log.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Render(ctx, filepath.Join(t.TempDir(), "x.pdf"), sampleJob(model.OutputFormatPDF))
	require.ErrorIs(t, err, context.Canceled)
}

// File downloads authorize against the producing job, so output for two
// requesters must never share a checksum.
func TestRender_RequesterChangesBytes(t *testing.T) {
	r := New(log.NewNop())
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")

	other := sampleJob(model.OutputFormatPDF)
	other.RequestedBy = "3"

	require.NoError(t, r.Render(context.Background(), a, sampleJob(model.OutputFormatPDF)))
	require.NoError(t, r.Render(context.Background(), b, other))

	first, err := os.ReadFile(a)
	require.NoError(t, err)
	second, err := os.ReadFile(b)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
