package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageSourceProperties are the arguments shared by every tool that takes a
// label photo. Exactly one of path and image_base64 must be given.
func imageSourceProperties(withRegion bool) map[string]interface{} {
	props := map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"image_base64": map[string]interface{}{
			"type":        "string",
			"description": "Base64-encoded image data, instead of path",
		},
	}
	if withRegion {
		props["region"] = map[string]interface{}{
			"type":        "object",
			"description": "Optional crop applied before reading: (x1,y1) inclusive, (x2,y2) exclusive",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		}
		props["region_name"] = map[string]interface{}{
			"type":        "string",
			"enum":        []string{"full", "top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
			"description": "Optional named crop, used when region is not given",
		}
	}
	return props
}

func noArguments() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// E-number Operations
		{
			Name:        "enumber_extract",
			Description: "Find E-numbers in free text and return them in canonical form (e.g. 'e-160a' becomes E160A), deduplicated in first-seen order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Ingredient text to scan",
					},
					"lenient": map[string]interface{}{
						"type":        "boolean",
						"description": "Also accept bare 3-4 digit numbers such as '330'. Defaults to the server configuration for typed text.",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "enumber_lookup",
			Description: "Look up a single E-number in the reference table.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"code": map[string]interface{}{
						"type":        "string",
						"description": "E-number such as E471, e-471 or 471",
					},
				},
				"required": []string{"code"},
			},
		},
		{
			Name:        "enumber_list",
			Description: "List the reference table, optionally only vegan or only non-vegan entries.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"vegan": map[string]interface{}{
						"type":        "boolean",
						"description": "Optional filter on the vegan flag",
					},
				},
			},
		},

		// Checks
		{
			Name:        "vegan_check_text",
			Description: "Check whether every E-number in an ingredient list is vegan. Unknown codes count as not vegan.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Ingredient text to check",
					},
					"lenient": map[string]interface{}{
						"type":        "boolean",
						"description": "Also accept bare 3-4 digit numbers. Defaults to the server configuration.",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "vegan_check_image",
			Description: "Read a photographed ingredient label with OCR and check its E-numbers. The image is binarized and scaled to at most 1600px before recognition.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageSourceProperties(true),
			},
		},

		// Image Operations
		{
			Name:        "image_preprocess",
			Description: "Return the black and white image that would be sent to OCR, as base64-encoded JPEG, with ink coverage and contrast diagnostics.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageSourceProperties(true),
			},
		},
		{
			Name:        "image_inspect",
			Description: "Get dimensions, format and transparency of an image without decoding its pixels.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageSourceProperties(false),
			},
		},
		{
			Name:        "image_region_guide",
			Description: "Overlay a labeled coordinate grid on a label photo to pick the region that holds the ingredient list. Returns base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": func() map[string]interface{} {
					props := imageSourceProperties(false)
					props["grid_spacing"] = map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between grid lines. Default 100",
						"default":     100,
					}
					props["show_coordinates"] = map[string]interface{}{
						"type":        "boolean",
						"description": "Label grid intersections with coordinates. Default true",
						"default":     true,
					}
					props["grid_color"] = map[string]interface{}{
						"type":        "string",
						"description": "Grid color as '#rrggbb'. Default '#ff0000'",
						"default":     "#ff0000",
					}
					return props
				}(),
			},
		},

		// Session Operations
		{
			Name:        "session_set_text",
			Description: "Replace the ingredient text of the current check. Codes are re-extracted immediately; the verdict is only computed on submit.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Ingredient text",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "session_upload_image",
			Description: "Read a label photo with OCR and use the recognized text as the ingredient text of the current check. Only one upload may run at a time.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageSourceProperties(true),
			},
		},
		{
			Name:        "session_submit",
			Description: "Classify the current ingredient text and resolve the check to vegan or not vegan.",
			InputSchema: noArguments(),
		},
		{
			Name:        "session_reset",
			Description: "Start over: clear text, codes and verdict. An upload in progress is discarded.",
			InputSchema: noArguments(),
		},
		{
			Name:        "session_state",
			Description: "Get the status, text, codes and verdict of the current check.",
			InputSchema: noArguments(),
		},

		// Diagnostics
		{
			Name:        "ocr_info",
			Description: "Report whether the configured OCR backend is available and its version.",
			InputSchema: noArguments(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
