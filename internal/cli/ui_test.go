package cli

import (
	"bytes"
	"testing"

	"github.com/matzehuels/storyswift/pkg/swiftui"
)

func TestWriteUnits(t *testing.T) {
	var buf bytes.Buffer
	writeUnits(&buf, []swiftui.Unit{
		{Name: "LoginView", Source: "import SwiftUI\n"},
		{Name: "HomeView", Source: "import SwiftUI\n"},
	})

	want := "// LoginView.swift\nimport SwiftUI\n\n// HomeView.swift\nimport SwiftUI\n"
	if buf.String() != want {
		t.Errorf("writeUnits() =\n%s\nwant\n%s", buf.String(), want)
	}
}
