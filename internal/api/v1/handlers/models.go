package handlers

const (
	StatusOK   = "ok"
	StatusFail = "fail"
)

// Envelope wraps every JSON response.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Cached *bool  `json:"cached,omitempty"`
	Error  string `json:"error,omitempty"`
}

type CallbackResponse struct {
	URL          string `json:"url"`
	Instructions string `json:"instructions"`
}
