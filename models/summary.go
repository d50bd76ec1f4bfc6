package models

// SummaryResponse is the uniform outcome of a summarization call.
// Success has no Error; failure has a non-empty Error and an empty Summary.
type SummaryResponse struct {
	Success bool   `json:"success" yaml:"success"`
	Summary string `json:"summary" yaml:"summary"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SummarySuccess builds the success branch.
func SummarySuccess(summary string) SummaryResponse {
	return SummaryResponse{Success: true, Summary: summary}
}

// SummaryFailure builds the failure branch.
func SummaryFailure(message string) SummaryResponse {
	return SummaryResponse{Success: false, Summary: "", Error: message}
}

// Result pairs the extracted content with its summary for display.
type Result struct {
	Content ScrapedContent  `json:"content" yaml:"content"`
	Summary SummaryResponse `json:"summary" yaml:"summary"`
}
