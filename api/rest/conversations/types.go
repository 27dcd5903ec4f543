package conversations

// DeleteResponse is returned after a conversation is removed
type DeleteResponse struct {
	Message string `json:"message"`
}

// ListQuery holds the query parameters of GET /api/conversation
type ListQuery struct {
	SessionID string `form:"session_id"`
	Limit     int    `form:"limit"`
}
