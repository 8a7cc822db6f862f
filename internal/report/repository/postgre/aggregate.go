package postgre

import (
	"context"
	"strings"

	"report-srv/internal/model"
	"report-srv/internal/report/repository"
)

const sumApprovedBase = `SELECT COALESCE(SUM(e.amount), 0), COUNT(*)
	FROM expense e`

const sumApprovedWhere = `
	WHERE e.approval_status = 'APPROVED'
	AND e.created_at >= $1 AND e.created_at < $2`

// SumApproved totals approved expenses created in [Start, End) for the scope.
func (r *implRepository) SumApproved(ctx context.Context, opts repository.SumApprovedOptions) (model.ApprovedAgg, error) {
	var (
		query string
		args  = []any{opts.Start, opts.End}
	)

	switch opts.Scope {
	case model.DataScopeAll:
		query = sumApprovedBase + sumApprovedWhere
	case model.DataScopeMy:
		if opts.UserID == "" {
			return model.ApprovedAgg{}, repository.ErrInvalidScope
		}
		query = sumApprovedBase + sumApprovedWhere + ` AND e.user_id = $3`
		args = append(args, opts.UserID)
	case model.DataScopeDept:
		dept := strings.TrimSpace(opts.Department)
		if dept == "" {
			return model.ApprovedAgg{}, repository.ErrInvalidScope
		}
		query = sumApprovedBase + ` JOIN users u ON u.id = e.user_id` + sumApprovedWhere + ` AND u.department_name = $3`
		args = append(args, dept)
	default:
		return model.ApprovedAgg{}, repository.ErrInvalidScope
	}

	var agg model.ApprovedAgg
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&agg.Total, &agg.Count); err != nil {
		r.l.Errorf(ctx, "report.repository.postgre.SumApproved: %v", err)
		return model.ApprovedAgg{}, err
	}
	return agg, nil
}
