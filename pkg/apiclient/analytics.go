package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SpendingPoint is one bucket of the spending-over-time query.
type SpendingPoint struct {
	Date     string `json:"date"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

// SpendingQuery narrows the spending analytics. Zero values are omitted.
type SpendingQuery struct {
	AccountID int64
	DateFrom  time.Time
	DateTo    time.Time
}

// BreakdownPeriod selects the window for a category breakdown.
type BreakdownPeriod string

const (
	PeriodMonth   BreakdownPeriod = "month"
	PeriodQuarter BreakdownPeriod = "quarter"
	PeriodYear    BreakdownPeriod = "year"
)

// SpendingAnalytics returns spending aggregated over the queried date range.
func (c *Client) SpendingAnalytics(ctx context.Context, query SpendingQuery) ([]SpendingPoint, error) {
	q := url.Values{}
	if query.AccountID != 0 {
		q.Set("accountId", strconv.FormatInt(query.AccountID, 10))
	}
	if !query.DateFrom.IsZero() {
		q.Set("dateFrom", query.DateFrom.Format(time.DateOnly))
	}
	if !query.DateTo.IsZero() {
		q.Set("dateTo", query.DateTo.Format(time.DateOnly))
	}

	var out []SpendingPoint
	if err := c.do(ctx, http.MethodGet, "/analytics/spending", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryAnalytics returns the spending share per category over a period.
func (c *Client) CategoryAnalytics(ctx context.Context, accountID int64, period BreakdownPeriod) ([]CategoryBreakdown, error) {
	q := url.Values{}
	if accountID != 0 {
		q.Set("accountId", strconv.FormatInt(accountID, 10))
	}
	if period != "" {
		q.Set("period", string(period))
	}

	var out []CategoryBreakdown
	if err := c.do(ctx, http.MethodGet, "/analytics/categories", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AuditLogs returns a page of the security audit trail, optionally narrowed
// to one user.
func (c *Client) AuditLogs(ctx context.Context, page, pageSize int, userID *uuid.UUID) (*Paginated[AuditLogEntry], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	if userID != nil {
		q.Set("userId", userID.String())
	}

	var out Paginated[AuditLogEntry]
	if err := c.do(ctx, http.MethodGet, "/audit/logs", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
