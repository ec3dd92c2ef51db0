package recommend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"leafcare/internal/classification"
)

const defaultLanguage = "en"

// ParseRequest decodes a request body. The body is either
// {classification, segmentation?, crop?, location?, notes?, language?} or a
// bare classification payload. A body that is not JSON at all still yields a
// usable Request (with an unknown classification) together with the decode
// error, so transports can answer with a best-effort fallback.
func ParseRequest(raw []byte) (Request, error) {
	req := Request{
		Classification: classification.Normalize(nil),
		Context:        Context{Language: defaultLanguage},
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return req, fmt.Errorf("recommend: empty request body")
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return req, fmt.Errorf("recommend: decode request: %w", err)
	}

	req.Classification = classification.Normalize(body)
	obj, ok := body.(map[string]any)
	if !ok {
		return req, nil
	}
	req.Context = Context{
		Crop:     stringField(obj, "crop"),
		Location: stringField(obj, "location"),
		Notes:    stringField(obj, "notes"),
		Language: stringField(obj, "language"),
	}
	if req.Context.Language == "" {
		req.Context.Language = defaultLanguage
	}
	req.Segmentation = decodeSegmentation(obj["segmentation"])
	return req, nil
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}

// decodeSegmentation accepts only an object with a numeric severity score;
// anything else is treated as "no segmentation available".
func decodeSegmentation(v any) *classification.Segmentation {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	sev, ok := obj["severity"].(map[string]any)
	if !ok {
		return nil
	}
	if _, ok := sev["severity_score"].(float64); !ok {
		return nil
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return nil
	}
	var seg classification.Segmentation
	if err := json.Unmarshal(b, &seg); err != nil {
		return nil
	}
	return &seg
}
