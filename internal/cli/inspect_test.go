package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/storyswift/pkg/component"
	"github.com/matzehuels/storyswift/pkg/pipeline"
)

func sampleInspection() *pipeline.Inspection {
	return &pipeline.Inspection{
		Mode: pipeline.ModeFlat,
		Screens: []pipeline.ScreenReport{
			{
				ID:   "vc1",
				Tag:  "viewController",
				Name: "Login",
				Components: []component.Component{
					{Kind: component.KindLabel, ID: "l1", Text: "Hello", Frame: component.Rect{Y: 20}},
					{Kind: component.KindVStack, ID: "st", Children: []component.Component{
						{Kind: component.KindButton, ID: "b1", Text: "Go"},
					}},
				},
			},
			{ID: "vc2", Tag: "viewController"},
		},
	}
}

func TestWriteInspectionText(t *testing.T) {
	var buf bytes.Buffer
	if err := writeInspection(&buf, sampleInspection(), "text"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"flat", "viewController vc1 (Login)", `Label#l1("Hello")`, `    y=0 Button#b1("Go")`, "no components"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteInspectionStructured(t *testing.T) {
	var buf bytes.Buffer
	if err := writeInspection(&buf, sampleInspection(), "json"); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Mode    string `json:"mode"`
		Screens []struct {
			Components []struct {
				Kind string `json:"kind"`
			} `json:"components"`
		} `json:"screens"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Screens[0].Components[0].Kind != component.KindLabel.String() {
		t.Errorf("kind = %q", decoded.Screens[0].Components[0].Kind)
	}

	buf.Reset()
	if err := writeInspection(&buf, sampleInspection(), "yaml"); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if doc["mode"] != "flat" {
		t.Errorf("yaml mode = %v", doc["mode"])
	}
}

func TestRunInspect(t *testing.T) {
	c, ctx := newTestCLI(t)
	src := writeDescriptor(t, t.TempDir(), "Main.storyboard", loginStoryboard)

	var buf bytes.Buffer
	if err := c.runInspect(ctx, src, inspectOpts{format: "json"}, &buf); err != nil {
		t.Fatalf("runInspect() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"mode": "flow"`) || !strings.Contains(buf.String(), `"text": "Welcome"`) {
		t.Errorf("report = %s", buf.String())
	}
}
