package domain

// Invoice status values as reported by the remote API.
const (
	StatusPaid    = "Paid"
	StatusUnpaid  = "Unpaid"
	StatusOverdue = "Overdue"
)

// InvoiceItem is a single line item on an invoice.
type InvoiceItem struct {
	Item  string  `json:"item"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

// Invoice as returned by the remote API.
type Invoice struct {
	ID            int           `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Customer      string        `json:"customer"`
	Amount        float64       `json:"amount"`
	Date          string        `json:"date"`
	DueDate       string        `json:"dueDate"`
	Status        string        `json:"status"`
	Description   string        `json:"description"`
	Items         []InvoiceItem `json:"items"`
}

// InvoiceDraft is the user-supplied payload for creating an invoice.
// Dates are ISO-8601 date strings (YYYY-MM-DD), matching the remote API.
type InvoiceDraft struct {
	Customer    string        `json:"customer"`
	Date        string        `json:"date"`
	DueDate     string        `json:"dueDate"`
	Description string        `json:"description,omitempty"`
	Items       []InvoiceItem `json:"items"`
}
