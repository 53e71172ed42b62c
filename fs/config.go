package fs

import (
	"context"
)

// Global
var (
	// globalConfig for the process
	globalConfig = NewConfig()

	// Version of the server, set by the linker on release builds
	Version = "v0.1.0-DEV"
)

// ConfigInfo is the ambient config shared by every part of the server
type ConfigInfo struct {
	LogLevel   LogLevel
	UseJSONLog bool
}

// NewConfig creates a new config with everything set to the default
// value.
func NewConfig() *ConfigInfo {
	c := new(ConfigInfo)

	// Set any values which aren't the zero for the type
	c.LogLevel = LogLevelNotice

	return c
}

type configContextKeyType struct{}

// Context key for config
var configContextKey = configContextKeyType{}

// GetConfig returns the global or context sensitive config
func GetConfig(ctx context.Context) *ConfigInfo {
	if ctx == nil {
		return globalConfig
	}
	c := ctx.Value(configContextKey)
	if c == nil {
		return globalConfig
	}
	return c.(*ConfigInfo)
}

// AddConfig returns a mutable config structure based on a shallow
// copy of that found in ctx and returns a new context with that added
// to it.
func AddConfig(ctx context.Context) (context.Context, *ConfigInfo) {
	c := GetConfig(ctx)
	cCopy := new(ConfigInfo)
	*cCopy = *c
	newCtx := context.WithValue(ctx, configContextKey, cCopy)
	return newCtx, cCopy
}
