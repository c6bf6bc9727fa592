package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/vegan-check-mcp/internal/checker"
	"github.com/ironsheep/vegan-check-mcp/internal/classify"
	"github.com/ironsheep/vegan-check-mcp/internal/enumber"
	"github.com/ironsheep/vegan-check-mcp/internal/imaging"
	"github.com/ironsheep/vegan-check-mcp/internal/ocr"
	"github.com/ironsheep/vegan-check-mcp/internal/reference"
)

// errNoImage is returned when an image tool gets neither path nor image_base64.
var errNoImage = errors.New("one of path or image_base64 is required")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "vegan_check_text", "session_submit").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ToolError is the data attached to a failed tools/call response.
type ToolError struct {
	// Message is safe to show to an end user.
	Message string `json:"message"`
	// Detail is the underlying Go error.
	Detail string `json:"detail"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000
// and a ToolError as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolError{
			Message: checker.UserMessage(err),
			Detail:  err.Error(),
		})
	}

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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// E-number Operations
	case "enumber_extract":
		return s.handleEnumberExtract(args)
	case "enumber_lookup":
		return s.handleEnumberLookup(args)
	case "enumber_list":
		return s.handleEnumberList(args)

	// Checks
	case "vegan_check_text":
		return s.handleVeganCheckText(args)
	case "vegan_check_image":
		return s.handleVeganCheckImage(ctx, args)

	// Image Operations
	case "image_preprocess":
		return s.handleImagePreprocess(args)
	case "image_inspect":
		return s.handleImageInspect(args)
	case "image_region_guide":
		return s.handleImageRegionGuide(args)

	// Session Operations
	case "session_set_text":
		return s.handleSessionSetText(args)
	case "session_upload_image":
		return s.handleSessionUploadImage(ctx, args)
	case "session_submit":
		return s.handleSessionSubmit()
	case "session_reset":
		s.session.Reset()
		return s.session.Snapshot(), nil
	case "session_state":
		return s.session.Snapshot(), nil

	// Diagnostics
	case "ocr_info":
		return ocr.Probe(s.ocrOpts), nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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
// Marshal errors yield an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Argument Helpers ===

type imageSourceArgs struct {
	Path        string          `json:"path"`
	ImageBase64 string          `json:"image_base64"`
	Region      *imaging.Region `json:"region,omitempty"`
	RegionName  string          `json:"region_name"`
}

// load returns the encoded image bytes named by a.
func (a imageSourceArgs) load() ([]byte, error) {
	switch {
	case a.Path != "" && a.ImageBase64 != "":
		return nil, errors.New("path and image_base64 are mutually exclusive")
	case a.Path != "":
		return imaging.ReadFile(a.Path)
	case a.ImageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(a.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64: %v", imaging.ErrImageDecode, err)
		}
		return data, nil
	default:
		return nil, errNoImage
	}
}

func (a imageSourceArgs) selection() imaging.Selection {
	return imaging.Selection{Region: a.Region, Name: a.RegionName}
}

// pipelineFor returns the server pipeline, or a copy with typed-text
// leniency overridden when lenient is set.
func (s *Server) pipelineFor(lenient *bool) *checker.Pipeline {
	if lenient == nil {
		return s.pipeline
	}
	p := *s.pipeline
	p.Extractor.LenientText = *lenient
	return &p
}

// === E-number Handlers ===

type textArgs struct {
	Text    string `json:"text"`
	Lenient *bool  `json:"lenient,omitempty"`
}

type extractResult struct {
	Mode  string      `json:"mode"`
	Codes enumber.Set `json:"codes"`
	Count int         `json:"count"`
}

func (s *Server) handleEnumberExtract(args json.RawMessage) (interface{}, error) {
	var a textArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p := s.pipelineFor(a.Lenient)
	codes := p.Extract(a.Text, enumber.ChannelText)
	return &extractResult{
		Mode:  p.Extractor.Mode(enumber.ChannelText).String(),
		Codes: codes,
		Count: codes.Len(),
	}, nil
}

type lookupArgs struct {
	Code string `json:"code"`
}

func (s *Server) handleEnumberLookup(args json.RawMessage) (interface{}, error) {
	var a lookupArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	code, err := enumber.Parse(a.Code)
	if err != nil {
		return nil, err
	}
	if e, ok := s.pipeline.Table.Lookup(code); ok {
		return classify.Annotation{Code: e.Code, Name: e.Name, Vegan: e.Vegan, Known: true}, nil
	}
	return classify.Annotation{Code: code, Name: classify.UnknownName}, nil
}

type listArgs struct {
	Vegan *bool `json:"vegan,omitempty"`
}

type listResult struct {
	Entries []reference.Entry `json:"entries"`
	Count   int               `json:"count"`
}

func (s *Server) handleEnumberList(args json.RawMessage) (interface{}, error) {
	var a listArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	entries := s.pipeline.Table.Entries()
	if a.Vegan != nil {
		filtered := entries[:0]
		for _, e := range entries {
			if e.Vegan == *a.Vegan {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	return &listResult{Entries: entries, Count: len(entries)}, nil
}

// === Check Handlers ===

func (s *Server) handleVeganCheckText(args json.RawMessage) (interface{}, error) {
	var a textArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.pipelineFor(a.Lenient).CheckText(a.Text)
}

func (s *Server) handleVeganCheckImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSourceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := a.load()
	if err != nil {
		return nil, err
	}
	return s.pipeline.CheckImage(ctx, data, a.selection())
}

// === Image Handlers ===

type preprocessResult struct {
	*imaging.EncodedImage
	SourceWidth  int                     `json:"source_width"`
	SourceHeight int                     `json:"source_height"`
	Stats        imaging.Stats           `json:"stats"`
	Contrast     *imaging.ContrastResult `json:"contrast"`
}

func (s *Server) handleImagePreprocess(args json.RawMessage) (interface{}, error) {
	var a imageSourceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := a.load()
	if err != nil {
		return nil, err
	}
	prep, err := imaging.Prepare(data, a.selection())
	if err != nil {
		return nil, err
	}
	return &preprocessResult{
		EncodedImage: imaging.NewEncodedImage(prep.Processed, prep.JPEG),
		SourceWidth:  prep.Processed.SourceWidth,
		SourceHeight: prep.Processed.SourceHeight,
		Stats:        prep.Processed.Stats,
		Contrast:     prep.Contrast,
	}, nil
}

func (s *Server) handleImageInspect(args json.RawMessage) (interface{}, error) {
	var a imageSourceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := a.load()
	if err != nil {
		return nil, err
	}
	return imaging.Inspect(data)
}

type regionGuideArgs struct {
	imageSourceArgs
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates *bool  `json:"show_coordinates,omitempty"`
	GridColor       string `json:"grid_color"`
}

func (s *Server) handleImageRegionGuide(args json.RawMessage) (interface{}, error) {
	var a regionGuideArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = imaging.DefaultGuideSpacing
	}
	if a.GridColor == "" {
		a.GridColor = "#ff0000"
	}
	show := true
	if a.ShowCoordinates != nil {
		show = *a.ShowCoordinates
	}

	data, err := a.load()
	if err != nil {
		return nil, err
	}
	img, err := imaging.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	return imaging.RegionGuide(img, a.GridSpacing, show, a.GridColor)
}

// === Session Handlers ===

func (s *Server) handleSessionSetText(args json.RawMessage) (interface{}, error) {
	var a textArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.SetText(a.Text); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}

func (s *Server) handleSessionUploadImage(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSourceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := a.load()
	if err != nil {
		return nil, err
	}
	if err := s.session.UploadImage(ctx, data, a.selection()); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}

func (s *Server) handleSessionSubmit() (interface{}, error) {
	if _, err := s.session.Submit(); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}
