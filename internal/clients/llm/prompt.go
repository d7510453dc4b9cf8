package llm

// Prompt is a single-turn chat request.
type Prompt struct {
	// Operation labels the call in metrics and logs, e.g. "ats_score".
	Operation   string
	System      string
	User        string
	Temperature float32
	MaxTokens   int
	// JSONObject asks the provider to constrain output to a single JSON object.
	JSONObject bool
}
