package settlement

import "time"

func sampleStatement() StatementData {
	scheduled := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	return StatementData{
		StatementNumber: "STM-20240701-00042",
		StatementDate:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodStart:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:       time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Partner: PartnerSnapshot{
			ID:             "3f2a9c1e-7b4d-4e2a-9f10-1234567890ab",
			BusinessName:   "Adventure Sports Inc",
			ContactName:    "John Smith",
			ContactEmail:   "john@adventuresports.com",
			CommissionTier: "Gold",
			CommissionRate: 0.45,
		},
		Summary: Summary{
			TotalPolicies:    2,
			TotalPremium:     62.95,
			TotalCommission:  28.33,
			PreviousBalance:  100,
			PaymentsReceived: 50,
			CurrentBalance:   78.33,
		},
		LineItems: []LineItem{
			{Date: "2024-06-03", Description: "Rock Climbing", PolicyNumber: "POL-20240603-00001", Premium: 12.99, CommissionRate: 0.45, CommissionAmount: 5.85},
			{Date: "2024-06-11", Description: "Kayaking, group", PolicyNumber: "POL-20240611-00002", Premium: 49.96, CommissionRate: 0.45, CommissionAmount: 22.48},
		},
		PaymentInfo: &PaymentInfo{Method: "ACH Transfer", LastFour: "4821", ScheduledDate: &scheduled},
	}
}
