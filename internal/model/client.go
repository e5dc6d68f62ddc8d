package model

// ClientStatus is the lifecycle state of a client relationship.
type ClientStatus string

// Client statuses.
const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientPending  ClientStatus = "pending"
	ClientBlocked  ClientStatus = "blocked"
)

// BillingInfo holds per-client billing defaults.
type BillingInfo struct {
	PaymentTerms string  `json:"paymentTerms"`
	DefaultRate  float64 `json:"defaultRate"`
}

// Client is a client record as returned by the API. OutstandingBalance is
// maintained server-side as totalBilled - totalPaid; the UI only displays
// it, never recomputes it.
type Client struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Email              string       `json:"email"`
	Company            string       `json:"company"`
	Status             ClientStatus `json:"status"`
	BillingInfo        BillingInfo  `json:"billingInfo"`
	TotalBilled        float64      `json:"totalBilled"`
	TotalPaid          float64      `json:"totalPaid"`
	OutstandingBalance float64      `json:"outstandingBalance"`
}

// ClientOverview is the aggregate returned by GET /api/clients/dashboard.
type ClientOverview struct {
	Clients          []Client `json:"clients"`
	TopClients       []Client `json:"topClients"`
	ActiveClients    int      `json:"activeClients"`
	TotalBilled      float64  `json:"totalBilled"`
	TotalOutstanding float64  `json:"totalOutstanding"`
}
