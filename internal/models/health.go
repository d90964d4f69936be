package models

// HealthResponse reports service and database health
// swagger:model HealthResponse
type HealthResponse struct {
	// example: healthy
	Status string `json:"status"`
	// RFC 3339 time of the check
	Timestamp string `json:"timestamp,omitempty"`
	// example: Database connection failed
	Error string `json:"error,omitempty"`
}

// AuthHealth describes the session seen on the health request
type AuthHealth struct {
	HasSession bool   `json:"hasSession"`
	Timestamp  string `json:"timestamp"`
}

// AuthHealthResponse reports auth subsystem health
// swagger:model AuthHealthResponse
type AuthHealthResponse struct {
	// example: healthy
	Status string      `json:"status"`
	Auth   *AuthHealth `json:"auth,omitempty"`
	// Set when the session check itself failed
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
