package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/photo-watermark-mcp/internal/config"
	"github.com/ironsheep/photo-watermark-mcp/internal/container"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
	"github.com/ironsheep/photo-watermark-mcp/internal/layout"
	"github.com/ironsheep/photo-watermark-mcp/internal/metadata"
)

// DefaultPreviewWidth bounds watermark_preview output when max_width is unset.
const DefaultPreviewWidth = 1024

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "watermark_compose").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.logger.With(zap.String("request_id", uuid.NewString()), zap.String("tool", params.Name))
	start := time.Now()

	result, err := s.executeTool(log, params.Name, params.Arguments)
	if err != nil {
		log.Warn("tool call failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	log.Info("tool call completed", zap.Duration("elapsed", time.Since(start)))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(log *zap.Logger, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "watermark_list_layouts":
		return s.handleListLayouts()
	case "watermark_inspect":
		return s.handleInspect(args)
	case "watermark_compose":
		return s.handleCompose(log, args)
	case "watermark_preview":
		return s.handlePreview(log, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments; absent arguments decode to the zero value.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Layouts ===

// ListLayoutsResult is the result of watermark_list_layouts. Selectors are
// the element names a quadrant of the custom layout can display.
type ListLayoutsResult struct {
	Default   string          `json:"default"`
	Layouts   []layout.Layout `json:"layouts"`
	Selectors []string        `json:"selectors"`
}

func (s *Server) handleListLayouts() (interface{}, error) {
	return &ListLayoutsResult{
		Default:   s.cfg.Layout.Type,
		Layouts:   layout.List(),
		Selectors: config.Selectors,
	}, nil
}

// === Inspect ===

type inspectArgs struct {
	Path string `json:"path"`
}

// InspectResult describes a photo as the compositor sees it.
type InspectResult struct {
	Path          string `json:"path"`
	Format        string `json:"format"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Orientation   int    `json:"orientation"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	HasExif       bool   `json:"has_exif"`
	Make          string `json:"make,omitempty"`
	Model         string `json:"model,omitempty"`
	LensMake      string `json:"lens_make,omitempty"`
	LensModel     string `json:"lens_model,omitempty"`
	Params        string `json:"params,omitempty"`
	CapturedAt    string `json:"captured_at,omitempty"`
}

func (s *Server) handleInspect(args json.RawMessage) (interface{}, error) {
	var a inspectArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}
	return s.Inspect(a.Path)
}

// Inspect reports the dimensions and camera metadata of the photo at path.
// Width and height are given after EXIF orientation is applied.
func (s *Server) Inspect(path string) (*InspectResult, error) {
	src, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}

	meta, err := metadata.Extract(bytes.NewReader(src.Raw))
	hasExif := err == nil
	if err != nil && !errors.Is(err, metadata.ErrNoExif) {
		return nil, fmt.Errorf("failed to read metadata of %s: %w", path, err)
	}

	info := src.Info()
	w, h := info.Width, info.Height
	if meta.Orientation >= 5 {
		w, h = h, w
	}

	res := &InspectResult{
		Path:          path,
		Format:        info.Format,
		Width:         w,
		Height:        h,
		Orientation:   meta.Orientation,
		FileSizeBytes: info.FileSizeBytes,
		HasExif:       hasExif,
		Make:          meta.Make,
		Model:         meta.Model,
		LensMake:      meta.LensMake,
		LensModel:     meta.LensModel,
		Params:        meta.ParamString(s.cfg.Global.FocalLength.UseEquivalentFocalLength),
	}
	if !meta.DateTime.IsZero() {
		res.CapturedAt = meta.DateTime.Format(time.RFC3339)
	}
	return res, nil
}

// === Compose ===

// ComposeArgs are the arguments of watermark_compose.
type ComposeArgs struct {
	Path    string `json:"path"`
	Layout  string `json:"layout,omitempty"`
	Output  string `json:"output,omitempty"`
	Quality int    `json:"quality,omitempty"`
}

// ComposeResult reports a composed and saved photo.
type ComposeResult struct {
	Output string   `json:"output"`
	Layout string   `json:"layout"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Stages []string `json:"stages"`
}

func (s *Server) handleCompose(log *zap.Logger, args json.RawMessage) (interface{}, error) {
	var a ComposeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return s.Compose(log, a)
}

// Compose runs the layout chain over the photo and saves the result. An empty
// layout uses the configured one; an empty output writes next to the source.
func (s *Server) Compose(log *zap.Logger, a ComposeArgs) (*ComposeResult, error) {
	if a.Quality == 0 {
		a.Quality = s.cfg.Base.Quality
	}
	if a.Quality < 1 || a.Quality > 100 {
		return nil, fmt.Errorf("quality must be within [1,100], got %d", a.Quality)
	}

	out := a.Output
	if out == "" && a.Path != "" {
		out = DefaultOutputPath(a.Path)
	}
	if a.Path != "" && filepath.Clean(out) == filepath.Clean(a.Path) {
		return nil, fmt.Errorf("output %s would overwrite the source photo", out)
	}

	c, stages, id, err := s.compose(log, a.Path, a.Layout)
	if err != nil {
		return nil, err
	}
	if err := imaging.Save(c.Image(), out, a.Quality); err != nil {
		return nil, err
	}

	return &ComposeResult{
		Output: out,
		Layout: id,
		Width:  c.Width(),
		Height: c.Height(),
		Stages: stages,
	}, nil
}

// === Preview ===

type previewArgs struct {
	Path     string `json:"path"`
	Layout   string `json:"layout,omitempty"`
	MaxWidth int    `json:"max_width,omitempty"`
}

// PreviewResult is a downscaled composed image.
type PreviewResult struct {
	Layout string `json:"layout"`
	*imaging.PreviewResult
}

func (s *Server) handlePreview(log *zap.Logger, args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.MaxWidth == 0 {
		a.MaxWidth = DefaultPreviewWidth
	}
	if a.MaxWidth < 0 {
		return nil, fmt.Errorf("max_width must be positive, got %d", a.MaxWidth)
	}

	c, _, id, err := s.compose(log, a.Path, a.Layout)
	if err != nil {
		return nil, err
	}
	p, err := imaging.Preview(c.Image(), a.MaxWidth)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{Layout: id, PreviewResult: p}, nil
}

// compose builds a fresh container and chain for one call and runs it.
func (s *Server) compose(log *zap.Logger, path, layoutID string) (*container.Container, []string, string, error) {
	if path == "" {
		return nil, nil, "", errors.New("path is required")
	}
	if layoutID == "" {
		layoutID = s.cfg.Layout.Type
	}

	chain, err := layout.BuildChain(layoutID, s.cfg, layout.Deps{
		Text:   s.text,
		Logos:  s.logos,
		Logger: log,
	})
	if err != nil {
		return nil, nil, "", err
	}

	src, err := s.cache.Load(path)
	if err != nil {
		return nil, nil, "", err
	}
	c, err := container.FromSource(src,
		container.WithEquivalentFocalLength(s.cfg.Global.FocalLength.UseEquivalentFocalLength))
	if err != nil {
		return nil, nil, "", err
	}

	if err := chain.Process(c); err != nil {
		return nil, nil, "", err
	}
	return c, chain.Stages(), layoutID, nil
}

// DefaultOutputPath places the composed photo next to src with a _watermark
// suffix. PNG sources stay PNG; everything else is written as JPEG.
func DefaultOutputPath(src string) string {
	ext := strings.ToLower(filepath.Ext(src))
	stem := strings.TrimSuffix(src, filepath.Ext(src))
	if ext != ".png" {
		ext = ".jpg"
	}
	return stem + "_watermark" + ext
}
