// Package llm provides one ports.Completer variant per LLM vendor,
// selected through a "vendor/model" spec string. Call sites never
// branch on vendor names; they hold a Completer.
package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hotchpotch/secon-dev-n-year-summary-vibe-cording/internal/domain/ports"
)

// Options carries vendor credentials and shared client settings.
type Options struct {
	OpenAIAPIKey    string
	GoogleAPIKey    string
	AnthropicAPIKey string
	Timeout         time.Duration
}

// ParseModelSpec splits a "vendor/model-name" spec string.
func ParseModelSpec(spec string) (vendor, model string, err error) {
	vendor, model, ok := strings.Cut(spec, "/")
	if !ok || vendor == "" || model == "" {
		return "", "", fmt.Errorf("invalid model spec %q (expected vendor/model-name)", spec)
	}
	return vendor, model, nil
}

// New returns the Completer for the given model spec.
func New(spec string, opts Options) (ports.Completer, error) {
	vendor, model, err := ParseModelSpec(spec)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(vendor) {
	case "openai":
		return newOpenAI(opts.OpenAIAPIKey, model, opts.Timeout), nil
	case "gemini":
		return newGemini(opts.GoogleAPIKey, model, opts.Timeout), nil
	case "claude":
		return newClaude(opts.AnthropicAPIKey, model, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported vendor %q", vendor)
	}
}

func newRestyClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)
}
