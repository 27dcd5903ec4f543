package translate

// TranslateRequest is the body of POST /api/translate
type TranslateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}
