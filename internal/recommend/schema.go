package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"leafcare/internal/classification"
	"leafcare/internal/priority"
	"leafcare/internal/util/jsonutil"
)

// ErrSchema marks model output that parsed as JSON but violated the
// recommendation schema.
var ErrSchema = errors.New("recommend: model output failed schema validation")

// modelOutput is the validated subset of a generative answer.
type modelOutput struct {
	Priority           priority.Priority
	Title              string
	Summary            string
	Confidence         float64
	ImmediateActions   []string
	TreatmentOptions   []string
	Prevention         []string
	MonitoringPlan     string
	QuestionsForFarmer []string
	SafetyNotes        []string
}

// ParseModelOutput decodes raw model text (recovering a wrapped object when
// needed) and validates it strictly. Any violation fails the whole result.
func ParseModelOutput(raw json.RawMessage) (modelOutput, error) {
	v, err := jsonutil.DecodeLenient(raw)
	if err != nil {
		return modelOutput{}, err
	}
	return validate(v)
}

func validate(v any) (modelOutput, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return modelOutput{}, schemaErr("root", "expected object")
	}
	var out modelOutput

	ps, ok := obj["priority"].(string)
	if !ok {
		return modelOutput{}, schemaErr("priority", "expected string")
	}
	p, err := priority.Parse(ps)
	if err != nil {
		return modelOutput{}, schemaErr("priority", err.Error())
	}
	out.Priority = p

	if out.Title, err = requiredString(obj, "title"); err != nil {
		return modelOutput{}, err
	}
	if out.Summary, err = requiredString(obj, "summary"); err != nil {
		return modelOutput{}, err
	}

	conf, ok := obj["confidence"].(float64)
	if !ok {
		return modelOutput{}, schemaErr("confidence", "expected number")
	}
	if math.IsNaN(conf) || conf < 0 || conf > 1 {
		return modelOutput{}, schemaErr("confidence", fmt.Sprintf("%v outside [0,1]", conf))
	}
	out.Confidence = conf

	lists := []struct {
		key string
		dst *[]string
	}{
		{"immediateActions", &out.ImmediateActions},
		{"treatmentOptions", &out.TreatmentOptions},
		{"prevention", &out.Prevention},
		{"questionsForFarmer", &out.QuestionsForFarmer},
		{"safetyNotes", &out.SafetyNotes},
	}
	for _, l := range lists {
		if *l.dst, err = optionalList(obj, l.key); err != nil {
			return modelOutput{}, err
		}
	}

	if raw, present := obj["monitoringPlan"]; present {
		s, ok := raw.(string)
		if !ok {
			return modelOutput{}, schemaErr("monitoringPlan", "expected string")
		}
		out.MonitoringPlan = s
	}
	return out, nil
}

func requiredString(obj map[string]any, key string) (string, error) {
	s, ok := obj[key].(string)
	if !ok {
		return "", schemaErr(key, "expected string")
	}
	if strings.TrimSpace(s) == "" {
		return "", schemaErr(key, "must not be empty")
	}
	return s, nil
}

// optionalList defaults an absent key to an empty list. A present key must be
// an array of strings; null counts as present.
func optionalList(obj map[string]any, key string) ([]string, error) {
	raw, present := obj[key]
	if !present {
		return []string{}, nil
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, schemaErr(key, "expected array of strings")
	}
	out := make([]string, 0, len(arr))
	for i, el := range arr {
		s, ok := el.(string)
		if !ok {
			return nil, schemaErr(fmt.Sprintf("%s[%d]", key, i), "expected string")
		}
		out = append(out, s)
	}
	return out, nil
}

func schemaErr(field, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrSchema, field, msg)
}

// BlendConfidence anchors the model's self-reported confidence toward the
// classifier's top-1 score: 0.7*model + 0.3*classifier.
func BlendConfidence(model, classifierTop1 float64) float64 {
	return classification.Clamp01(0.7*model + 0.3*classification.Clamp01(classifierTop1))
}
