package domain

// UserPreferences holds per-user display and notification settings.
type UserPreferences struct {
	UserID           string `json:"userID"` // Primary Key / FK -> User
	Theme            string `json:"theme"`  // "light" or "dark"
	Currency         string `json:"currency"`
	BudgetAlerts     bool   `json:"budgetAlerts"`
	MonthlyReports   bool   `json:"monthlyReports"`
	ExpenseReminders bool   `json:"expenseReminders"`
	Language         string `json:"language"`
	AuditFields
}

// DefaultPreferences returns the preferences assigned to a new user.
func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:           userID,
		Theme:            "light",
		Currency:         BaseCurrencyCode,
		BudgetAlerts:     true,
		MonthlyReports:   true,
		ExpenseReminders: false,
		Language:         "en",
	}
}
