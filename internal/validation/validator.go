// Package validation gates image-creation requests before anything is
// persisted. Checks run in a fixed order and the first failure wins.
package validation

import (
	"context"
	"encoding/base64"
	"fmt"
	"slices"

	"github.com/AznStevy/bme590final/internal/model"
)

// Validator checks submitted image-creation requests against structural
// and semantic rules. The process name is verified against the live
// capability set of the external processor.
type Validator struct {
	processor model.Processor
}

func New(processor model.Processor) *Validator {
	return &Validator{processor: processor}
}

// Validate runs the ordered checks over a decoded request object and
// returns validated creation parameters. The returned error, if any, is a
// *Error carrying the failure kind.
//
// Checks, in order: image_id (string), image (base64 payload), height and
// width (integers), format (known image type, case-insensitive),
// processing_time (non-negative integer), process (processor capability).
// description is optional and defaults to "None"; parent_id is passed
// through unchecked, a bad value surfaces as not-found at lookup time.
func (v *Validator) Validate(ctx context.Context, req map[string]any) (model.CreateImageParams, error) {
	var params model.CreateImageParams

	if req == nil {
		return params, invalidShape()
	}

	id, err := stringField(req, "image_id")
	if err != nil {
		return params, err
	}
	params.ID = id

	raw, ok := req["image"]
	if !ok {
		return params, missingField("image")
	}
	data, ok := decodeBase64(raw)
	if !ok {
		return params, wrongType("image", "base64")
	}
	params.Data = data

	if params.Height, err = intField(req, "height"); err != nil {
		return params, err
	}
	if params.Width, err = intField(req, "width"); err != nil {
		return params, err
	}

	formatName, err := stringField(req, "format")
	if err != nil {
		return params, err
	}
	format, ok := model.ParseFormat(formatName)
	if !ok {
		return params, invalidEnum("format", formatName)
	}
	params.Format = format

	procTime, err := intField(req, "processing_time")
	if err != nil {
		return params, err
	}
	if procTime < 0 {
		return params, wrongType("processing_time", "non-negative integer")
	}
	params.ProcessingTime = procTime

	process, err := stringField(req, "process")
	if err != nil {
		return params, err
	}
	caps, err := v.processor.ListCapabilities(ctx)
	if err != nil {
		return params, fmt.Errorf("failed to list processor capabilities: %w", err)
	}
	if !slices.Contains(caps, process) {
		return params, unknownProcess(process)
	}
	params.Process = process

	params.Description = model.DefaultDescription
	if desc, ok := req["description"].(string); ok {
		params.Description = desc
	}

	if raw, ok := req["parent_id"]; ok {
		params.HasParent = true
		if s, isStr := raw.(string); isStr {
			params.ParentID = s
		} else {
			// Surfaces as a not-found parent, not a validation failure.
			params.ParentID = fmt.Sprint(raw)
		}
	}

	return params, nil
}

func stringField(req map[string]any, name string) (string, error) {
	raw, ok := req[name]
	if !ok {
		return "", missingField(name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", wrongType(name, "string")
	}
	return s, nil
}

func intField(req map[string]any, name string) (int, error) {
	raw, ok := req[name]
	if !ok {
		return 0, missingField(name)
	}
	n, ok := intValue(raw)
	if !ok {
		return 0, wrongType(name, "integer")
	}
	return n, nil
}

// intValue accepts native ints and JSON numbers with an integral value.
func intValue(raw any) (int, bool) {
	switch n := raw.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// decodeBase64 treats any decode error as "not base64", never as a fault.
func decodeBase64(raw any) ([]byte, bool) {
	s, ok := raw.(string)
	if !ok {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return data, true
}
