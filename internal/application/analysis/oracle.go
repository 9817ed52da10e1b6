package analysis

import "context"

// Oracle produces advisory commentary over computed metrics. The analysis
// services never depend on it for numbers; when the oracle is down or not
// configured the report ships metrics-only.
type Oracle interface {
	// Advise returns free-text commentary for the given prompt.
	Advise(ctx context.Context, prompt string) (string, error)
	// Enabled reports whether the oracle has a usable configuration.
	Enabled() bool
}
