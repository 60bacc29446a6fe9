package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Julianb233/daily-event-insurance-sub010/internal/commission"
	"github.com/Julianb233/daily-event-insurance-sub010/internal/datasource"
)

func newFixtureService(t *testing.T) *Service {
	t.Helper()
	src, err := datasource.NewFixtureSource()
	require.NoError(t, err)
	now := func() time.Time { return time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC) }
	return NewService(src,
		WithClock(now),
		WithNumberGenerator(NewNumberGenerator(now, func(int) int { return 123 })),
	)
}

func TestService_BuildFromFixtures(t *testing.T) {
	svc := newFixtureService(t)

	data, err := svc.Build(context.Background(), "prt-001-adventure",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "STM-20240701-00123", data.StatementNumber)
	assert.Equal(t, "Adventure Sports Inc", data.Partner.BusinessName)
	require.Len(t, data.LineItems, 2, "cancelled policies are excluded")
	assert.Equal(t, "2024-06-03", data.LineItems[0].Date, "oldest first")
	assert.Equal(t, "POL-20240611-00002", data.LineItems[1].PolicyNumber)

	assert.Equal(t, 2, data.Summary.TotalPolicies)
	assert.InDelta(t, 62.95, data.Summary.TotalPremium, 1e-9)
	assert.InDelta(t, 28.33, data.Summary.TotalCommission, 1e-9)
	assert.InDelta(t, 94.50, data.Summary.PreviousBalance, 1e-9)
	assert.InDelta(t, 94.50, data.Summary.PaymentsReceived, 1e-9)
	assert.InDelta(t, 28.33, data.Summary.CurrentBalance, 1e-9)

	require.NotNil(t, data.PaymentInfo)
	assert.Equal(t, "4821", data.PaymentInfo.LastFour)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), *data.PaymentInfo.ScheduledDate)

	assert.Empty(t, Reconcile(data))
}

func TestService_BuildErrors(t *testing.T) {
	svc := newFixtureService(t)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Build(context.Background(), "prt-404", start, start)
	assert.ErrorIs(t, err, datasource.ErrNotFound)

	_, err = svc.Build(context.Background(), "", start, start)
	assert.ErrorIs(t, err, datasource.ErrInvalidRequest)

	_, err = svc.Build(context.Background(), "prt-001-adventure", start, start.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestService_BuildWithoutPayoutMethod(t *testing.T) {
	svc := newFixtureService(t)

	data, err := svc.Build(context.Background(), "prt-003-citymarathon",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, data.PaymentInfo)
	assert.Empty(t, data.LineItems)
	assert.Zero(t, data.Summary.CurrentBalance)
}

const untieredFixture = `
partners:
  - id: prt-new
    business_name: Harbor Regatta
    status: active
    created_at: 2024-05-01T00:00:00Z
policies:
  - id: pol-a
    policy_number: POL-20240610-00001
    partner_id: prt-new
    event_type: Sailing
    participants: 1200
    premium: 100.00
    commission: 45.00
    status: active
    created_at: 2024-06-10T12:00:00Z
`

func TestService_ResolvesMissingTierFromVolume(t *testing.T) {
	src, err := datasource.LoadFixtures([]byte(untieredFixture))
	require.NoError(t, err)

	tiers := commission.NewService(commission.NewMemoryRepo())
	svc := NewService(src, WithTierResolver(tiers))

	data, err := svc.Build(context.Background(), "prt-new",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Silver", data.Partner.CommissionTier)
	assert.InDelta(t, 0.45, data.Partner.CommissionRate, 1e-9)

	data, err = newFixtureService(t).Build(context.Background(), "prt-001-adventure",
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Gold", data.Partner.CommissionTier, "tier on record is kept")
}
