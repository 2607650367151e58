package swiftui

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/matzehuels/storyswift/pkg/component"
	"github.com/matzehuels/storyswift/pkg/navigation"
	"github.com/matzehuels/storyswift/pkg/storyboard"
)

// Fixed unit names.
const (
	TabContainerName = "TabContentView"
	FlatPrefix       = "GeneratedView"
	TableCellName    = "TableCellContentView"
)

// Unit is one generated Swift source file.
type Unit struct {
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"`
}

// FileName returns the file the unit is written to.
func (u Unit) FileName() string { return u.Name + ".swift" }

// ComponentsFunc returns the ordered components of one screen node.
// The node may be nil for unresolved screens.
type ComponentsFunc func(storyboard.Node) []component.Component

// FlowOptions controls flow-mode generation.
type FlowOptions struct {
	// ChildContent renders the mapped components of child screens below
	// their placeholder text. Off by default: child screens get only the
	// placeholder and a navigation title.
	ChildContent bool
}

var funcs = template.FuncMap{
	"indent": indent,
}

var flatTemplate = template.Must(template.New("flat").Funcs(funcs).Parse(`import SwiftUI

struct {{.Name}}: View {
    var body: some View {
        VStack(alignment: .center, spacing: 0) {
{{indent .Body 3}}
        }
        .padding()
        .frame(maxWidth: .infinity, maxHeight: .infinity, alignment: .center)
        .background(Color.white)
    }
}
{{template "preview" .}}`))

var flowRootTemplate = template.Must(template.New("flowRoot").Funcs(funcs).Parse(`import SwiftUI

struct {{.Name}}: View {
    var body: some View {
        NavigationStack {
            VStack {
{{indent .Body 4}}
{{- range .Links}}
                NavigationLink("{{.Title}}", destination: {{.Name}}())
{{- end}}
            }
            .navigationTitle("{{.Title}}")
        }
    }
}
{{template "preview" .}}`))

var flowChildTemplate = template.Must(template.New("flowChild").Funcs(funcs).Parse(`import SwiftUI

struct {{.Name}}: View {
    var body: some View {
        VStack {
            Text("current view is {{.Title}}")
{{- if .Body}}
{{indent .Body 3}}
{{- end}}
        }
        .padding()
        .navigationTitle("{{.Title}}")
    }
}
{{template "preview" .}}`))

var tabContainerTemplate = template.Must(template.New("tabs").Funcs(funcs).Parse(`import SwiftUI

struct {{.Name}}: View {
    var body: some View {
        TabView {
{{- range .Tabs}}
            {{.Name}}()
                .tabItem {
                    Label("{{.Title}}", systemImage: "{{.Icon}}")
                }
{{- end}}
        }
    }
}
{{template "preview" .}}`))

const previewBlock = `{{define "preview"}}
#if DEBUG
#Preview {
    {{.Name}}()
}
#endif
{{end}}`

func init() {
	for _, t := range []*template.Template{flatTemplate, flowRootTemplate, flowChildTemplate, tabContainerTemplate} {
		template.Must(t.Parse(previewBlock))
	}
}

type link struct {
	Name  string
	Title string
}

type tab struct {
	Name  string
	Title string
	Icon  string
}

type unitData struct {
	Name  string
	Title string
	Body  string
	Links []link
	Tabs  []tab
}

func execute(t *template.Template, data unitData) Unit {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// Templates are fixed and data is plain strings.
		panic(fmt.Sprintf("swiftui: executing %s template: %v", t.Name(), err))
	}
	return Unit{Name: data.Name, Source: strings.TrimRight(buf.String(), "\n") + "\n"}
}

// Flat renders one screen as a standalone view named name.
func Flat(name string, components []component.Component) Unit {
	return execute(flatTemplate, unitData{Name: name, Body: Body(components)})
}

// FlatName returns the name of the n-th (1-based) flat unit.
func FlatName(n int) string { return fmt.Sprintf("%s%d", FlatPrefix, n) }

// ScreenName returns the view name of a flow screen.
func ScreenName(s navigation.Screen) string { return s.StoryboardID + "View" }

// Flow renders a navigation flow. The first unit is the root screen inside
// a NavigationStack with one NavigationLink per child; it is followed by
// one unit per distinct child screen. Screens are told apart by ID; a
// screen whose view name is already taken gets a number appended.
func Flow(flow *navigation.Flow, components ComponentsFunc, opts FlowOptions) []Unit {
	if flow == nil {
		return nil
	}
	rootName := ScreenName(flow.Root)
	seenIDs := map[string]bool{flow.Root.ID: true}
	names := map[string]bool{rootName: true}

	var (
		links    []link
		children []Unit
	)
	for _, s := range flow.Children {
		if seenIDs[s.ID] {
			continue
		}
		seenIDs[s.ID] = true
		name := uniqueName(ScreenName(s), names)
		links = append(links, link{Name: name, Title: s.StoryboardID})

		data := unitData{Name: name, Title: s.StoryboardID}
		if opts.ChildContent {
			data.Body = Body(components(s.Node))
		}
		children = append(children, execute(flowChildTemplate, data))
	}

	root := execute(flowRootTemplate, unitData{
		Name:  rootName,
		Title: flow.Root.StoryboardID,
		Body:  Body(components(flow.Root.Node)),
		Links: links,
	})
	return append([]Unit{root}, children...)
}

// uniqueName returns name, or name followed by the smallest number >= 2
// that is not in used, and records the result in used.
func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s%d", name, n)
	}
	used[candidate] = true
	return candidate
}

// TabName returns the view name of the tab at the 0-based index: the
// screen's class name, or Tab<N> without one, followed by "View".
func TabName(e navigation.TabEntry, index int) string {
	class := e.ClassName
	if class == "" {
		class = fmt.Sprintf("Tab%d", index+1)
	}
	return class + "View"
}

// Tabs renders one flat unit per tab entry, in entry order, followed by
// the TabContentView container. Unresolved entries render an empty view.
// Repeated names get the tab number appended.
func Tabs(entries []navigation.TabEntry, components ComponentsFunc) []Unit {
	units := make([]Unit, 0, len(entries)+1)
	tabs := make([]tab, 0, len(entries))
	seen := map[string]bool{TabContainerName: true}

	for i, e := range entries {
		name := TabName(e, i)
		if seen[name] {
			name = fmt.Sprintf("%s%d", name, i+1)
		}
		seen[name] = true

		units = append(units, Flat(name, components(e.Node)))
		title, icon := e.TabItem(i)
		tabs = append(tabs, tab{Name: name, Title: title, Icon: icon})
	}

	units = append(units, execute(tabContainerTemplate, unitData{Name: TabContainerName, Tabs: tabs}))
	return units
}
