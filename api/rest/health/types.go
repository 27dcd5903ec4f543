package health

import "time"

// Response represents the health check response
type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Services  Services  `json:"services"`
}

type Services struct {
	Database string `json:"database"`
	LLM      string `json:"llm"`
}

type RootResponse struct {
	Message string `json:"message"`
}
