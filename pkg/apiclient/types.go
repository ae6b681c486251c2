package apiclient

import (
	"time"

	"github.com/google/uuid"
)

// User represents the authenticated identity.
type User struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	MFAEnabled bool       `json:"mfaEnabled"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// AccountType enumerates the supported account kinds.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	AccountInvestment AccountType = "investment"
	AccountLoan       AccountType = "loan"
)

// Account is a bank account. Monetary values are decimal strings to preserve
// precision across the wire.
type Account struct {
	ID            int64       `json:"id"`
	PartyID       int64       `json:"partyId"`
	Balance       string      `json:"balance"`
	AccountNumber string      `json:"accountNumber"`
	AccountType   AccountType `json:"accountType"`
	BankName      string      `json:"bankName"`
	Currency      string      `json:"currency"`
	IsActive      bool        `json:"isActive"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// TransactionType enumerates the transaction kinds.
type TransactionType string

const (
	TransactionDebit    TransactionType = "debit"
	TransactionCredit   TransactionType = "credit"
	TransactionTransfer TransactionType = "transfer"
)

// Transaction is a single ledger entry on an account.
type Transaction struct {
	ID              int64           `json:"id"`
	AccountID       int64           `json:"accountId"`
	Amount          string          `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Date            string          `json:"date"`
	Balance         string          `json:"balance,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// PartyType enumerates counterparty kinds.
type PartyType string

const (
	PartyIndividual PartyType = "individual"
	PartyBusiness   PartyType = "business"
	PartyBank       PartyType = "bank"
)

// Party is a counterparty owning accounts or appearing on transactions.
type Party struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      PartyType `json:"type"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Receipt is the stored metadata of an uploaded receipt document.
type Receipt struct {
	ID            int64     `json:"id"`
	TransactionID int64     `json:"transactionId"`
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	MimeType      string    `json:"mimeType"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ReceiptFile is a downloaded receipt document.
type ReceiptFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// MonthlySpending is one month of aggregated cash flow.
type MonthlySpending struct {
	Month    string `json:"month"`
	Amount   string `json:"amount"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

// CategoryBreakdown is the share of spending attributed to one category.
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     string  `json:"amount"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color,omitempty"`
}

// DashboardData is the aggregate powering the overview screen.
type DashboardData struct {
	TotalBalance       string              `json:"totalBalance"`
	Accounts           []Account           `json:"accounts"`
	RecentTransactions []Transaction       `json:"recentTransactions"`
	MonthlySpending    []MonthlySpending   `json:"monthlySpending"`
	CategoryBreakdown  []CategoryBreakdown `json:"categoryBreakdown"`
}

// UserSettings holds per-user preferences.
type UserSettings struct {
	Theme         string               `json:"theme"`
	Language      string               `json:"language"`
	Currency      string               `json:"currency"`
	Notifications NotificationSettings `json:"notifications"`
	Security      SecuritySettings     `json:"security"`
}

type NotificationSettings struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

type SecuritySettings struct {
	MFAEnabled     bool `json:"mfaEnabled"`
	SessionTimeout int  `json:"sessionTimeout"`
}

// AuditLogEntry is one row of the security audit trail.
type AuditLogEntry struct {
	ID           uuid.UUID  `json:"id"`
	Timestamp    time.Time  `json:"timestamp"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	SessionID    *uuid.UUID `json:"sessionId,omitempty"`
	Action       string     `json:"action"`
	ResourceType string     `json:"resourceType"`
	ResourceID   string     `json:"resourceId,omitempty"`
	IPAddress    string     `json:"ipAddress"`
	UserAgent    string     `json:"userAgent,omitempty"`
	Success      bool       `json:"success"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	RiskScore    int        `json:"riskScore"`
}

// Page describes the position of a paginated response.
type Page struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginated wraps a page of results together with its position.
type Paginated[T any] struct {
	Data       []T  `json:"data"`
	Pagination Page `json:"pagination"`
}

// HealthStatus is the liveness probe response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
