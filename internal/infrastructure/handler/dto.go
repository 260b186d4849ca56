package handler

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// MessageResponse represents a plain confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse represents the response for a successful login
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// CreateTransactionRequest represents the request body for creating a
// transaction. The owner is never part of the request.
type CreateTransactionRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date,omitempty"`
	Description string  `json:"description,omitempty"`
}

// UpdateTransactionRequest represents the request body for a partial update.
// Absent fields leave the stored value untouched.
type UpdateTransactionRequest struct {
	Type        *string  `json:"type,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// TransactionResponse represents the response for transaction endpoints
type TransactionResponse struct {
	ID          string  `json:"id"`
	User        string  `json:"user"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
}

// TransactionListResponse represents one page of a transaction listing
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPages   int                   `json:"totalPages"`
	CurrentPage  int                   `json:"currentPage"`
}

// SummaryResponse represents the response for the summary endpoint
type SummaryResponse struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
}

// MonthCategoryTotalResponse represents one group of the month-wise report
type MonthCategoryTotalResponse struct {
	Month       int     `json:"month"`
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}
