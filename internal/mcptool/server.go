// Package mcptool exposes the drafting pipeline as MCP tools over stdio,
// for use from agent runtimes that speak the Model Context Protocol.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/patentdesk/fer-reply/internal/claims"
	"github.com/patentdesk/fer-reply/internal/config"
	"github.com/patentdesk/fer-reply/internal/docext"
	"github.com/patentdesk/fer-reply/internal/drafting"
)

// Server wraps an MCP server around the drafting service.
type Server struct {
	config    *config.Config
	svc       *drafting.Service
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(cfg *config.Config, svc *drafting.Service) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("drafting service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		svc:       svc,
		mcpServer: mcpServer,
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	parseTool := mcp.NewTool(
		"fer_parse_file",
		mcp.WithDescription("Parse a First Examination Report PDF into a structured JSON record "+
			"with application metadata, objections, cited sections, and prior-art references"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the FER PDF file"),
		),
	)
	s.mcpServer.AddTool(parseTool, s.handleParseFER)

	generateTool := mcp.NewTool(
		"fer_generate_reply",
		mcp.WithDescription("Generate a FER reply draft DOCX from a FER PDF and a Complete "+
			"Specification document, with optional amended claims and prior-art documents"),
		mcp.WithString("fer_path",
			mcp.Required(),
			mcp.Description("Full path to the FER PDF file"),
		),
		mcp.WithString("cs_path",
			mcp.Required(),
			mcp.Description("Full path to the Complete Specification (PDF or DOCX)"),
		),
		mcp.WithString("claims_path",
			mcp.Description("Optional path to an amended claims document (PDF or DOCX)"),
		),
		mcp.WithString("prior_art_paths",
			mcp.Description("Optional comma-separated paths to prior-art documents (text-copy PDF or DOCX)"),
		),
		mcp.WithString("output_path",
			mcp.Description("Where to write the DOCX (defaults to FER_Reply_Draft_<appno>.docx in the current directory)"),
		),
		mcp.WithString("agent",
			mcp.Description("Patent agent name for the signature block"),
		),
		mcp.WithString("office_address",
			mcp.Description("Patent office address for the letterhead"),
		),
		mcp.WithString("dx_range",
			mcp.Description("Cited document range, e.g. D1-D3"),
		),
		mcp.WithString("dx_disclosed_features",
			mcp.Description("Short statement of what the cited documents disclose"),
		),
	)
	s.mcpServer.AddTool(generateTool, s.handleGenerateReply)

	claimsTool := mcp.NewTool(
		"claims_extract_file",
		mcp.WithDescription("Extract the numbered claims from a claims document (PDF or DOCX) as JSON"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the claims document"),
		),
	)
	s.mcpServer.AddTool(claimsTool, s.handleExtractClaims)

	validateTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription("Validate that a file is a readable PDF and report pages, size, and encryption"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidatePDF)
}

func (s *Server) handleParseFER(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := s.svc.ParseFER(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleGenerateReply(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ferPath, err := request.RequireString("fer_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	csPath, err := request.RequireString("cs_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	stringArg := func(name string) string {
		if v, ok := args[name].(string); ok {
			return strings.TrimSpace(v)
		}
		return ""
	}

	var priorArts []drafting.PriorArtSource
	if raw := stringArg("prior_art_paths"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			priorArts = append(priorArts, drafting.PriorArtSource{
				Path: p,
				Name: filepath.Base(p),
			})
		}
	}

	result, err := s.svc.GenerateReply(drafting.GenerateRequest{
		FERPath:             ferPath,
		CSPath:              csPath,
		ClaimsPath:          stringArg("claims_path"),
		PriorArts:           priorArts,
		Agent:               stringArg("agent"),
		OfficeAddress:       stringArg("office_address"),
		DXRange:             stringArg("dx_range"),
		DXDisclosedFeatures: stringArg("dx_disclosed_features"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outputPath := stringArg("output_path")
	if outputPath == "" {
		outputPath = result.Filename
	}
	if err := os.WriteFile(outputPath, result.DocxBytes, 0o644); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write reply draft: %v", err)), nil
	}

	responseText := fmt.Sprintf("Reply draft written to: %s\n", outputPath)
	responseText += fmt.Sprintf("Size: %d bytes\n", len(result.DocxBytes))
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleExtractClaims(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	list, err := claims.Extract(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleValidatePDF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := docext.ValidatePDF(path, s.config.MaxUploadSize)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable\n", path)
		responseText += fmt.Sprintf("Pages: %d\n", result.Pages)
		responseText += fmt.Sprintf("Size: %d bytes\n", result.Size)
		responseText += fmt.Sprintf("Encrypted: %t\n", result.Encrypted)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", path, result.Message)
	}
	return mcp.NewToolResultText(responseText), nil
}

// Run serves MCP over stdio until the client disconnects.
func (s *Server) Run(_ context.Context) error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
