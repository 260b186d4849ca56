package entity

// Summary holds income/expense totals over a filtered transaction set.
// Balance is always TotalIncome minus TotalExpenses.
type Summary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
}

// MonthCategoryTotal is one group of the month-wise report: the summed amount
// of all transactions sharing a calendar month number and a category.
type MonthCategoryTotal struct {
	Month       int     `json:"month"`
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
}
