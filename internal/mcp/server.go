package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ganot/unolims/internal/logging"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Config contains server configuration.
type Config struct {
	Handler *Handler
	Logger  *zap.Logger
	Version string
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := logging.OrNop(cfg.Logger)
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "unolims",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Handler, logger)

	return server
}

func registerTools(server *sdkmcp.Server, h *Handler, logger *zap.Logger) {
	for _, def := range buildToolCatalog() {
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
			Annotations: &sdkmcp.ToolAnnotations{ReadOnlyHint: def.ReadOnly},
		}, toolHandler(h, def.Name, logger))
	}
}

func toolHandler(h *Handler, name string, logger *zap.Logger) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		if req != nil && req.Session != nil {
			ctx = WithSession(ctx, req.Session.ID())
		}
		out, err := h.Handle(ctx, name, args)
		if err != nil {
			logger.Debug("tool call failed", zap.String("tool", name), zap.Error(err))
			return errorResult(err), nil
		}
		return toolResult(out)
	}
}

func toolResult(out any) (*sdkmcp.CallToolResult, error) {
	if img, ok := out.(Image); ok {
		content := []sdkmcp.Content{&sdkmcp.ImageContent{Data: img.Data, MIMEType: img.MIMEType}}
		if img.Caption != "" {
			content = append(content, &sdkmcp.TextContent{Text: img.Caption})
		}
		return &sdkmcp.CallToolResult{Content: content}, nil
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

// errorResult reports a tool failure to the model instead of failing the call.
func errorResult(err error) *sdkmcp.CallToolResult {
	text := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if data, mErr := json.Marshal(apiErr); mErr == nil {
			text = string(data)
		}
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
	}
}
