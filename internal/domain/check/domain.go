package check

import "time"

// IDLength is the length of a generated check id.
const IDLength = 20

type Protocol string

const (
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
)

type Check struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Protocol       Protocol  `json:"protocol"`
	URL            string    `json:"url"`
	Method         string    `json:"method"`
	SuccessCodes   []int     `json:"success_codes"`
	TimeoutSeconds int       `json:"timeout_seconds"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
