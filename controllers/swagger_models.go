package controllers

// StandardErrorResponse is returned by every failing endpoint
type StandardErrorResponse struct {
	Error string `json:"error" example:"site with id=42 not found"`
	Field string `json:"field,omitempty" example:"site_id"`
}

// MessageResponse acknowledges an operation without payload
type MessageResponse struct {
	Message string `json:"message" example:"pbx id=3 was deleted successfully"`
}

// EntityObject is any registered entity rendered as a JSON object
type EntityObject map[string]interface{}

// ServiceDetailResponse is an abstract row returned as its concrete specialization
type ServiceDetailResponse struct {
	Entity string       `json:"entity" example:"pbx"`
	Data   EntityObject `json:"data"`
}

// HealthResponse reports process and database health
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}
