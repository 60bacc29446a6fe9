package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var partnerCols = []string{"id", "business_name", "contact_name", "contact_email", "contact_phone", "status",
	"business_type", "integration_type", "commission_tier", "commission_rate", "payout_method", "payout_last_four", "created_at"}

func TestPostgresSource_GetPartner(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		id        string
		mockSetup func(pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "found",
			id:   "prt-001",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(partnerCols).AddRow("prt-001", "Adventure Sports Inc", "John Smith",
					"john@adventuresports.com", "555-0101", "active", "gym", "widget", "Gold", 0.45, "ACH Transfer", "4821", created)
				mock.ExpectQuery(`FROM partners WHERE id = \$1`).WithArgs("prt-001").WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			id:   "prt-404",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM partners WHERE id = \$1`).WithArgs("prt-404").WillReturnError(pgx.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.mockSetup(mock)

			p, err := NewPostgresSource(mock).GetPartner(context.Background(), tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Adventure Sports Inc", p.BusinessName)
				assert.Equal(t, "4821", p.PayoutLastFour)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresSource_ListPoliciesBuildsFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 6, 3, 16, 20, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"id", "policy_number", "partner_id", "customer_name", "customer_email",
		"event_type", "event_date", "participants", "coverage_type", "premium", "commission", "status", "created_at"}).
		AddRow("pol-1", "POL-20240603-00001", "prt-001", "Alice Wilson", "alice@example.com",
			"Rock Climbing", created, 1, "liability", 12.99, 5.85, "active", created)

	mock.ExpectQuery(`FROM policies WHERE partner_id = \$1 AND created_at >= \$2 AND created_at < \$3 ORDER BY created_at DESC`).
		WithArgs("prt-001", since, until).
		WillReturnRows(rows)

	got, err := NewPostgresSource(mock).ListPolicies(context.Background(), Filter{PartnerID: "prt-001", Since: &since, Until: &until})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "POL-20240603-00001", got[0].PolicyNumber)
	assert.InDelta(t, 5.85, got[0].Commission, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_SetPartnerStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(partnerCols).AddRow("prt-003", "City Marathon Events", "Mike Davis",
		"mike@citymarathon.com", "555-0103", "suspended", "event", "manual", "Bronze", 0.35, "", "", time.Now())
	mock.ExpectQuery(`UPDATE partners SET status = \$2`).WithArgs("prt-003", "suspended").WillReturnRows(rows)

	p, err := NewPostgresSource(mock).SetPartnerStatus(context.Background(), "prt-003", PartnerSuspended)
	require.NoError(t, err)
	assert.Equal(t, PartnerSuspended, p.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWhere_NoFilter(t *testing.T) {
	clause, args := where(Filter{}, "partner_id")
	assert.Empty(t, clause)
	assert.Empty(t, args)
}
