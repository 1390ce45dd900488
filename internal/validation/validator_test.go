package validation

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AznStevy/bme590final/internal/model"
)

type stubProcessor struct {
	caps []string
	err  error
}

func (s stubProcessor) ListCapabilities(_ context.Context) ([]string, error) {
	return s.caps, s.err
}

func validRequest() map[string]any {
	return map[string]any{
		"image_id":        "img-1",
		"image":           base64.StdEncoding.EncodeToString([]byte("pixels")),
		"height":          float64(128),
		"width":           float64(256),
		"format":          "png",
		"processing_time": float64(60),
		"process":         "blur",
	}
}

func TestValidator_Validate_Success(t *testing.T) {
	v := New(stubProcessor{caps: []string{"blur", "sharpen"}})

	params, err := v.Validate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "img-1", params.ID)
	assert.Equal(t, []byte("pixels"), params.Data)
	assert.Equal(t, 128, params.Height)
	assert.Equal(t, 256, params.Width)
	assert.Equal(t, model.FormatPNG, params.Format)
	assert.Equal(t, 60, params.ProcessingTime)
	assert.Equal(t, "blur", params.Process)
	assert.Equal(t, "None", params.Description)
	assert.False(t, params.HasParent)
}

func TestValidator_Validate_FailureKinds(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantKind  Kind
		wantField string
	}{
		{
			name:     "missing image_id",
			mutate:   func(r map[string]any) { delete(r, "image_id") },
			wantKind: KindMissingField, wantField: "image_id",
		},
		{
			name:     "image_id not a string",
			mutate:   func(r map[string]any) { r["image_id"] = float64(7) },
			wantKind: KindWrongType, wantField: "image_id",
		},
		{
			name:     "missing image",
			mutate:   func(r map[string]any) { delete(r, "image") },
			wantKind: KindMissingField, wantField: "image",
		},
		{
			name:     "image not base64",
			mutate:   func(r map[string]any) { r["image"] = "not-*-base64!" },
			wantKind: KindWrongType, wantField: "image",
		},
		{
			name:     "image not a string",
			mutate:   func(r map[string]any) { r["image"] = 42.0 },
			wantKind: KindWrongType, wantField: "image",
		},
		{
			name:     "missing height",
			mutate:   func(r map[string]any) { delete(r, "height") },
			wantKind: KindMissingField, wantField: "height",
		},
		{
			name:     "fractional height",
			mutate:   func(r map[string]any) { r["height"] = 128.5 },
			wantKind: KindWrongType, wantField: "height",
		},
		{
			name:     "missing width",
			mutate:   func(r map[string]any) { delete(r, "width") },
			wantKind: KindMissingField, wantField: "width",
		},
		{
			name:     "width not a number",
			mutate:   func(r map[string]any) { r["width"] = "256" },
			wantKind: KindWrongType, wantField: "width",
		},
		{
			name:     "missing format",
			mutate:   func(r map[string]any) { delete(r, "format") },
			wantKind: KindMissingField, wantField: "format",
		},
		{
			name:     "unknown format",
			mutate:   func(r map[string]any) { r["format"] = "bmp" },
			wantKind: KindInvalidEnum, wantField: "format",
		},
		{
			name:     "missing processing_time",
			mutate:   func(r map[string]any) { delete(r, "processing_time") },
			wantKind: KindMissingField, wantField: "processing_time",
		},
		{
			name:     "negative processing_time",
			mutate:   func(r map[string]any) { r["processing_time"] = float64(-1) },
			wantKind: KindWrongType, wantField: "processing_time",
		},
		{
			name:     "missing process",
			mutate:   func(r map[string]any) { delete(r, "process") },
			wantKind: KindMissingField, wantField: "process",
		},
		{
			name:     "unknown process",
			mutate:   func(r map[string]any) { r["process"] = "teleport" },
			wantKind: KindUnknownProcess, wantField: "process",
		},
	}

	v := New(stubProcessor{caps: []string{"blur"}})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := v.Validate(context.Background(), req)
			require.Error(t, err)

			var vErr *Error
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantKind, vErr.Kind)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestValidator_Validate_NilRequest(t *testing.T) {
	v := New(stubProcessor{caps: []string{"blur"}})

	_, err := v.Validate(context.Background(), nil)

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, KindInvalidShape, vErr.Kind)
}

func TestValidator_Validate_FirstFailureWins(t *testing.T) {
	v := New(stubProcessor{caps: []string{"blur"}})

	req := validRequest()
	delete(req, "image_id")
	delete(req, "format")

	_, err := v.Validate(context.Background(), req)

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "image_id", vErr.Field)
}

func TestValidator_Validate_FormatCaseInsensitive(t *testing.T) {
	v := New(stubProcessor{caps: []string{"blur"}})

	for _, name := range []string{"PNG", "png", "pNg"} {
		req := validRequest()
		req["format"] = name

		params, err := v.Validate(context.Background(), req)
		require.NoError(t, err, name)
		assert.Equal(t, model.FormatPNG, params.Format, name)
	}
}

func TestValidator_Validate_DescriptionProvided(t *testing.T) {
	v := New(stubProcessor{caps: []string{"blur"}})

	req := validRequest()
	req["description"] = "post blur"

	params, err := v.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "post blur", params.Description)
}

func TestValidator_Validate_ParentIDPassedThrough(t *testing.T) {
	v := New(stubProcessor{caps: []string{"blur"}})

	req := validRequest()
	req["parent_id"] = "img-0"

	params, err := v.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, params.HasParent)
	assert.Equal(t, "img-0", params.ParentID)
}

func TestValidator_Validate_CapabilityQueryError(t *testing.T) {
	queryErr := errors.New("processor unreachable")
	v := New(stubProcessor{err: queryErr})

	_, err := v.Validate(context.Background(), validRequest())
	require.Error(t, err)

	var vErr *Error
	assert.False(t, errors.As(err, &vErr))
	assert.ErrorIs(t, err, queryErr)
}

func TestValidator_Validate_IntegerInputs(t *testing.T) {
	v := New(stubProcessor{caps: []string{"blur"}})

	req := validRequest()
	req["height"] = 128
	req["width"] = int64(256)
	req["processing_time"] = 0

	params, err := v.Validate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 128, params.Height)
	assert.Equal(t, 256, params.Width)
	assert.Equal(t, 0, params.ProcessingTime)
}
