package mcptool

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/patentdesk/fer-reply/internal/config"
	"github.com/patentdesk/fer-reply/internal/drafting"
)

func newTestMCPServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	srv, err := NewServer(cfg, drafting.NewService(cfg, nil))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func callToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestNewServer(t *testing.T) {
	cfg := config.DefaultConfig()

	srv, err := NewServer(cfg, drafting.NewService(cfg, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv == nil {
		t.Fatal("server should not be nil")
	}

	if _, err := NewServer(cfg, nil); err == nil {
		t.Error("expected error for nil service")
	}
}

func TestHandleParseFER_MissingPath(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleParseFER(context.Background(), callToolRequest("fer_parse_file", map[string]any{}))
	if err != nil {
		t.Fatalf("handler should not return transport error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error result for missing path")
	}
}

func TestHandleParseFER_MissingFile(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleParseFER(context.Background(), callToolRequest("fer_parse_file", map[string]any{
		"path": "/nonexistent/fer.pdf",
	}))
	if err != nil {
		t.Fatalf("handler should not return transport error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error result for missing file")
	}
}

func TestHandleGenerateReply_MissingArgs(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleGenerateReply(context.Background(), callToolRequest("fer_generate_reply", map[string]any{
		"fer_path": "/tmp/fer.pdf",
	}))
	if err != nil {
		t.Fatalf("handler should not return transport error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error result for missing cs_path")
	}
}

func TestHandleExtractClaims_MissingFile(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleExtractClaims(context.Background(), callToolRequest("claims_extract_file", map[string]any{
		"path": "/nonexistent/claims.docx",
	}))
	if err != nil {
		t.Fatalf("handler should not return transport error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error result for missing file")
	}
}

func TestHandleValidatePDF_NotAPDF(t *testing.T) {
	srv := newTestMCPServer(t)

	result, err := srv.handleValidatePDF(context.Background(), callToolRequest("pdf_validate_file", map[string]any{
		"path": "/tmp/notes.txt",
	}))
	if err != nil {
		t.Fatalf("handler should not return transport error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error result for a non-PDF path")
	}
	if len(result.Content) > 0 {
		if tc, ok := mcp.AsTextContent(result.Content[0]); ok {
			if !strings.Contains(tc.Text, "not a PDF") && !strings.Contains(tc.Text, "does not exist") {
				t.Errorf("unexpected error text: %q", tc.Text)
			}
		}
	}
}
