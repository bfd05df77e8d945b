package translate

import (
	"encoding/json"
	"strings"

	"github.com/slack-go/slack"
)

// Result is one translation bundle: the Block Kit payload to render plus a
// plain-text fallback for notifications and clients that ignore blocks.
type Result struct {
	Text   string
	Blocks slack.Blocks
}

// generateResponse is the Ollama-style envelope around the model output.
type generateResponse struct {
	Response string `json:"response"`
}

// blockDoc mirrors the JSON document the prompt asks the model to emit.
type blockDoc struct {
	Blocks json.RawMessage `json:"blocks"`
}

// fallbackDoc is a minimal view of the same document used only to assemble
// the plain-text fallback.
type fallbackDoc struct {
	Blocks []struct {
		Type   string      `json:"type"`
		Text   *textField  `json:"text"`
		Fields []textField `json:"fields"`
	} `json:"blocks"`
}

type textField struct {
	Text string `json:"text"`
}

// parseResult decodes the endpoint body into a Result. Any structural
// problem is a *ServiceError: the orchestrator treats it like a failed call.
func parseResult(raw []byte) (*Result, error) {
	var envelope generateResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ServiceError{Detail: "parse response envelope", Cause: err}
	}
	if strings.TrimSpace(envelope.Response) == "" {
		return nil, &ServiceError{Detail: "empty model response"}
	}

	doc := stripFences(envelope.Response)

	var bd blockDoc
	if err := json.Unmarshal([]byte(doc), &bd); err != nil {
		return nil, &ServiceError{Detail: "parse model output", Cause: err}
	}
	if len(bd.Blocks) == 0 {
		return nil, &ServiceError{Detail: "model output has no blocks"}
	}

	var blocks slack.Blocks
	if err := json.Unmarshal(bd.Blocks, &blocks); err != nil {
		return nil, &ServiceError{Detail: "parse blocks", Cause: err}
	}
	if len(blocks.BlockSet) == 0 {
		return nil, &ServiceError{Detail: "model output has no blocks"}
	}

	text := fallbackText([]byte(doc))
	if text == "" {
		text = strings.TrimSpace(envelope.Response)
	}

	return &Result{Text: text, Blocks: blocks}, nil
}

// fallbackText joins every section text and field in document order.
func fallbackText(doc []byte) string {
	var fd fallbackDoc
	if err := json.Unmarshal(doc, &fd); err != nil {
		return ""
	}
	var parts []string
	for _, b := range fd.Blocks {
		if b.Text != nil && b.Text.Text != "" {
			parts = append(parts, b.Text.Text)
		}
		for _, f := range b.Fields {
			if f.Text != "" {
				parts = append(parts, f.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// stripFences removes a surrounding markdown code fence, which some models
// wrap around JSON output despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
