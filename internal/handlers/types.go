package handlers

// StatusResponse is the JSON body of webhook and health responses.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Service string `json:"service,omitempty"`
}

func okResponse() StatusResponse {
	return StatusResponse{Status: "ok"}
}

func errorResponse(message string) StatusResponse {
	return StatusResponse{Status: "error", Message: message}
}
