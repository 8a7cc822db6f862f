package report

import (
	"sort"
	"strings"

	"report-srv/internal/model"
)

// Known report type ids.
const (
	TypePersonalDetailExcel         = "PERSONAL_DETAIL_EXCEL"
	TypePersonalSummaryPDF          = "PERSONAL_SUMMARY_PDF"
	TypeDeptDetailExcel             = "DEPT_DETAIL_EXCEL"
	TypeDeptSummaryPDF              = "DEPT_SUMMARY_PDF"
	TypeAIStrategyPDF               = "AI_STRATEGY_PDF"
	TypeExpenseApprovedSummaryPDF   = "EXPENSE_APPROVED_SUMMARY_PDF"
	TypeExpenseApprovedSummaryExcel = "EXPENSE_APPROVED_SUMMARY_EXCEL"
)

// ReportType describes one kind of report.
type ReportType struct {
	ID        string
	Label     string
	Format    model.OutputFormat
	AdminOnly bool
	// ApprovedSummary types aggregate approved expenses for the period and
	// therefore require a parseable period.
	ApprovedSummary bool
}

// Registry is an immutable lookup of report types. The zero value is empty.
type Registry struct {
	types map[string]ReportType
	order []string
}

// NewRegistry builds a Registry. Later entries with the same id replace earlier ones.
func NewRegistry(types ...ReportType) Registry {
	r := Registry{types: make(map[string]ReportType, len(types))}
	for _, t := range types {
		key := normalizeTypeID(t.ID)
		if _, exists := r.types[key]; !exists {
			r.order = append(r.order, key)
		}
		t.ID = key
		r.types[key] = t
	}
	return r
}

var defaultRegistry = NewRegistry(
	ReportType{ID: TypePersonalDetailExcel, Label: "Personal Expense Detail", Format: model.OutputFormatExcel},
	ReportType{ID: TypePersonalSummaryPDF, Label: "Personal Expense Summary", Format: model.OutputFormatPDF},
	ReportType{ID: TypeDeptDetailExcel, Label: "Department Expense Detail", Format: model.OutputFormatExcel, AdminOnly: true},
	ReportType{ID: TypeDeptSummaryPDF, Label: "Department Expense Summary", Format: model.OutputFormatPDF, AdminOnly: true},
	ReportType{ID: TypeAIStrategyPDF, Label: "AI Spending Strategy", Format: model.OutputFormatPDF, AdminOnly: true},
	ReportType{ID: TypeExpenseApprovedSummaryPDF, Label: "Approved Expense Summary", Format: model.OutputFormatPDF, ApprovedSummary: true},
	ReportType{ID: TypeExpenseApprovedSummaryExcel, Label: "Approved Expense Summary", Format: model.OutputFormatExcel, ApprovedSummary: true},
)

// DefaultRegistry returns the report types this service knows about.
func DefaultRegistry() Registry {
	return defaultRegistry
}

// Lookup finds a type by id. The id is trimmed and matched case-insensitively.
func (r Registry) Lookup(id string) (ReportType, bool) {
	t, ok := r.types[normalizeTypeID(id)]
	return t, ok
}

// List returns the types in registration order. When includeAdminOnly is false,
// admin-only types are left out.
func (r Registry) List(includeAdminOnly bool) []ReportType {
	out := make([]ReportType, 0, len(r.order))
	for _, id := range r.order {
		t := r.types[id]
		if t.AdminOnly && !includeAdminOnly {
			continue
		}
		out = append(out, t)
	}
	return out
}

// IDs returns the sorted ids of every registered type.
func (r Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	sort.Strings(ids)
	return ids
}

func normalizeTypeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
