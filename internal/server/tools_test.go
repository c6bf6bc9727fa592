package server

import (
	"testing"

	"github.com/ironsheep/vegan-check-mcp/internal/imaging"
)

func toolMap() map[string]Tool {
	m := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		m[tool.Name] = tool
	}
	return m
}

func TestGetToolDefinitions(t *testing.T) {
	expectedTools := []string{
		"enumber_extract",
		"enumber_lookup",
		"enumber_list",
		"vegan_check_text",
		"vegan_check_image",
		"image_preprocess",
		"image_inspect",
		"image_region_guide",
		"session_set_text",
		"session_upload_image",
		"session_submit",
		"session_reset",
		"session_state",
		"ocr_info",
	}

	tools := toolMap()
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_RequiredText(t *testing.T) {
	tools := toolMap()

	for _, name := range []string{"enumber_extract", "vegan_check_text", "session_set_text"} {
		t.Run(name, func(t *testing.T) {
			required, ok := tools[name].InputSchema["required"].([]string)
			if !ok || len(required) != 1 || required[0] != "text" {
				t.Errorf("required: got %v, want [text]", tools[name].InputSchema["required"])
			}
		})
	}
}

func TestToolDefinitions_ImageSource(t *testing.T) {
	tools := toolMap()

	tests := []struct {
		name       string
		withRegion bool
	}{
		{"vegan_check_image", true},
		{"image_preprocess", true},
		{"session_upload_image", true},
		{"image_inspect", false},
		{"image_region_guide", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := tools[tt.name].InputSchema["properties"].(map[string]interface{})
			for _, p := range []string{"path", "image_base64"} {
				if _, ok := props[p]; !ok {
					t.Errorf("missing %s", p)
				}
			}
			_, hasRegion := props["region"]
			_, hasName := props["region_name"]
			if hasRegion != tt.withRegion || hasName != tt.withRegion {
				t.Errorf("region properties: got %v/%v, want %v", hasRegion, hasName, tt.withRegion)
			}
		})
	}
}

func TestToolDefinitions_RegionNames(t *testing.T) {
	props := toolMap()["vegan_check_image"].InputSchema["properties"].(map[string]interface{})
	regionName := props["region_name"].(map[string]interface{})
	enum, ok := regionName["enum"].([]string)
	if !ok {
		t.Fatal("region_name should have enum")
	}

	// Every advertised name must resolve.
	for _, name := range enum {
		if _, err := imaging.NamedRegion(name, 100, 100); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestToolDefinitions_RegionGuideDefaults(t *testing.T) {
	props := toolMap()["image_region_guide"].InputSchema["properties"].(map[string]interface{})

	expected := map[string]interface{}{
		"grid_spacing":     imaging.DefaultGuideSpacing,
		"show_coordinates": true,
		"grid_color":       "#ff0000",
	}
	for name, want := range expected {
		param, ok := props[name].(map[string]interface{})
		if !ok {
			t.Errorf("%s: parameter not found", name)
			continue
		}
		if param["default"] != want {
			t.Errorf("%s: default got %v, want %v", name, param["default"], want)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t, nil)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil || resp.Error != nil {
		t.Fatalf("handleToolsList: got %+v", resp)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
