package dto

// StatusDeleted is the status reported after a successful delete
const StatusDeleted = "deleted"

// StatusResponse represents the acknowledgement of a delete
type StatusResponse struct {
	Status string `json:"status"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service and database health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}
