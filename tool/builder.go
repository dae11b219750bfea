package tool

import (
	"context"
	"errors"

	"github.com/graphmind-ai/sdk/schema"
	"github.com/graphmind-ai/sdk/toolerr"
	"github.com/graphmind-ai/sdk/types"
)

// ExecuteFunc is the tool's execution logic.
type ExecuteFunc func(ctx context.Context, input map[string]any) (map[string]any, error)

// HealthFunc reports the tool's operational status.
type HealthFunc func(ctx context.Context) types.HealthStatus

// Config assembles a Tool through chained setters. Name and the execute
// function are mandatory; everything else has a usable default.
type Config struct {
	name         string
	version      string
	description  string
	tags         []string
	inputSchema  schema.JSON
	outputSchema schema.JSON
	executeFunc  ExecuteFunc
	healthFunc   HealthFunc
}

// NewConfig starts a Config at version 1.0.0 with empty object schemas.
func NewConfig() *Config {
	return &Config{
		version:      "1.0.0",
		tags:         []string{},
		inputSchema:  schema.Object(map[string]schema.JSON{}),
		outputSchema: schema.Object(map[string]schema.JSON{}),
	}
}

// SetName sets the tool name.
func (c *Config) SetName(name string) *Config {
	c.name = name
	return c
}

// SetVersion sets the tool version.
func (c *Config) SetVersion(version string) *Config {
	c.version = version
	return c
}

// SetDescription sets the tool description.
func (c *Config) SetDescription(desc string) *Config {
	c.description = desc
	return c
}

// SetTags sets the tool tags.
func (c *Config) SetTags(tags []string) *Config {
	c.tags = tags
	return c
}

// SetInputSchema sets the input schema.
func (c *Config) SetInputSchema(s schema.JSON) *Config {
	c.inputSchema = s
	return c
}

// SetOutputSchema sets the output schema.
func (c *Config) SetOutputSchema(s schema.JSON) *Config {
	c.outputSchema = s
	return c
}

// SetExecuteFunc sets the execution function.
func (c *Config) SetExecuteFunc(fn ExecuteFunc) *Config {
	c.executeFunc = fn
	return c
}

// SetHealthFunc sets an optional health check. Tools without one report
// healthy.
func (c *Config) SetHealthFunc(fn HealthFunc) *Config {
	c.healthFunc = fn
	return c
}

type sdkTool struct {
	name         string
	version      string
	description  string
	tags         []string
	inputSchema  schema.JSON
	outputSchema schema.JSON
	executeFunc  ExecuteFunc
	healthFunc   HealthFunc
}

// New builds a Tool from the config, rejecting a missing name or execute
// function.
func New(cfg *Config) (Tool, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("config cannot be nil")
	case cfg.name == "":
		return nil, errors.New("tool name is required")
	case cfg.executeFunc == nil:
		return nil, errors.New("execute function is required")
	}

	return &sdkTool{
		name:         cfg.name,
		version:      cfg.version,
		description:  cfg.description,
		tags:         cfg.tags,
		inputSchema:  cfg.inputSchema,
		outputSchema: cfg.outputSchema,
		executeFunc:  cfg.executeFunc,
		healthFunc:   cfg.healthFunc,
	}, nil
}

func (t *sdkTool) Name() string        { return t.name }
func (t *sdkTool) Version() string     { return t.version }
func (t *sdkTool) Description() string { return t.description }
func (t *sdkTool) Tags() []string      { return t.tags }

func (t *sdkTool) InputSchema() schema.JSON  { return t.inputSchema }
func (t *sdkTool) OutputSchema() schema.JSON { return t.outputSchema }

// Execute validates the input, runs the execution function, and validates
// what it produced. A schema failure on the output side is an internal
// error: the tool broke its own contract.
func (t *sdkTool) Execute(ctx context.Context, input map[string]any) (map[string]any, error) {
	if err := t.inputSchema.Validate(input); err != nil {
		return nil, toolerr.New(t.name, "validate-input", toolerr.ErrCodeInvalidInput, err.Error())
	}

	output, err := t.executeFunc(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := t.outputSchema.Validate(output); err != nil {
		return nil, toolerr.New(t.name, "validate-output", toolerr.ErrCodeInternal, err.Error())
	}

	return output, nil
}

func (t *sdkTool) Health(ctx context.Context) types.HealthStatus {
	if t.healthFunc != nil {
		return t.healthFunc(ctx)
	}
	return types.NewHealthyStatus("tool is operational")
}
