package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/internal/util"
	"github.com/hupe1980/agentswarm/logging"
)

// -------------------- Schema & Validation Tests --------------------

type sampleSchema struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer field"`
	C int    `json:"c,omitempty" description:"Omit empty field"`
}

func TestCreateSchema(t *testing.T) {
	schema := util.CreateSchema(sampleSchema{})

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")

	// Required only includes non-pointer, non-omitempty exported fields
	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"a"}, req)
}

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// Use []any to mirror possible JSON decoded schema shape
		"required": []any{"x"},
	}

	// Success
	err := util.ValidateParameters(map[string]any{"x": 5}, schema)
	assert.NoError(t, err)

	// JSON decoded integers arrive as float64
	err = util.ValidateParameters(map[string]any{"x": float64(5)}, schema)
	assert.NoError(t, err)

	// Missing required
	err = util.ValidateParameters(map[string]any{}, schema)
	require.Error(t, err)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "x", vErr.Field)

	// Wrong type
	err = util.ValidateParameters(map[string]any{"x": "not-int"}, schema)
	require.Error(t, err)
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Message, "expected type integer")
}

// -------------------- FunctionTool Tests --------------------

func testToolContext() *core.ToolContext {
	return core.NewToolContext(context.Background(), core.NewContextVars(), "call_1", "Tester", logging.NoOpLogger{})
}

func TestFunctionTool_Success(t *testing.T) {
	sum := NewFunctionTool(
		"calculate_sum",
		"Calculate the sum of two numbers",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []string{"a", "b"},
		},
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		},
	)

	assert.Equal(t, "calculate_sum", sum.Name())

	result, err := sum.Call(testToolContext(), map[string]any{"a": 1.5, "b": 2.5})
	require.NoError(t, err)
	assert.Equal(t, 4.0, result)
}

func TestFunctionTool_ValidationError(t *testing.T) {
	echo := NewFunctionTool(
		"echo",
		"Echo a value",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{"type": "string"},
			},
			"required": []string{"value"},
		},
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			return args["value"], nil
		},
	)

	_, err := echo.Call(testToolContext(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, CodeValidationError, toolErr.Code)
	assert.Equal(t, "echo", toolErr.Tool)
}

func TestFunctionTool_ExecutionErrorWrapped(t *testing.T) {
	failing := NewFunctionTool(
		"failing",
		"Always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ *core.ToolContext, _ map[string]any) (any, error) {
			return nil, errors.New("backend unavailable")
		},
	)

	_, err := failing.Call(testToolContext(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, CodeExecutionError, toolErr.Code)
	assert.Equal(t, "backend unavailable", toolErr.Message)
}

func TestFunctionTool_ToolErrorPassthrough(t *testing.T) {
	custom := NewToolError("custom", "rate limited", "RATE_LIMITED")
	failing := NewFunctionTool(
		"custom",
		"Returns a custom tool error",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ *core.ToolContext, _ map[string]any) (any, error) {
			return nil, custom
		},
	)

	_, err := failing.Call(testToolContext(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "RATE_LIMITED", toolErr.Code)
}

func TestFunctionTool_FromStruct(t *testing.T) {
	type weatherArgs struct {
		City string `json:"city" description:"City to look up"`
	}

	weather := NewFunctionToolFromStruct(
		"get_weather",
		"Get the current weather for a city",
		weatherArgs{},
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			return "sunny in " + args["city"].(string), nil
		},
	)

	props, ok := weather.Parameters()["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "city")

	result, err := weather.Call(testToolContext(), map[string]any{"city": "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, "sunny in Berlin", result)
}

func TestFunctionTool_ReadsContextVars(t *testing.T) {
	toolCtx := core.NewToolContext(
		context.Background(),
		core.ContextVars{"user_id": "u-1"},
		"call_1",
		"Tester",
		logging.NoOpLogger{},
	)

	whoami := NewFunctionTool(
		"whoami",
		"Return the current user id",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(tc *core.ToolContext, _ map[string]any) (any, error) {
			return tc.Vars().GetString("user_id"), nil
		},
	)

	result, err := whoami.Call(toolCtx, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "u-1", result)
}
