package component

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/storyswift/pkg/storyboard"
)

func ids(list []Component) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestScreenComponentsSortsByY(t *testing.T) {
	screen := node(t, `<viewController id="vc">
  <view key="view" id="root">
    <subviews>
      <button id="b1" title="Login"><rect key="frame" x="0" y="300" width="100" height="40"/></button>
      <label id="l1" text="Title"><rect key="frame" x="0" y="20" width="100" height="30"/></label>
      <textField id="t1"><rect key="frame" x="0" y="120" width="100" height="30"/></textField>
      <label id="l2" text="Same row"><rect key="frame" x="0" y="120" width="100" height="30"/></label>
    </subviews>
  </view>
</viewController>`)

	got := ids(ScreenComponents(screen, ScreenOptions{}))
	want := []string{"l1", "t1", "l2", "b1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestScreenComponentsStableOnTies(t *testing.T) {
	var xml string
	for i := range 10 {
		xml += fmt.Sprintf(`<label id="l%d"><rect key="frame" y="10"/></label>`, i)
	}
	screen := node(t, "<view><subviews>"+xml+"</subviews></view>")

	got := ids(ScreenComponents(screen, ScreenOptions{}))
	want := []string{"l0", "l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8", "l9"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestScreenComponentsPlaceholderFilter(t *testing.T) {
	tests := []struct {
		name   string
		label  string
		height string
		kept   bool
	}{
		{"placeholder collapsed", "Welcome! Please login", "0", false},
		{"placeholder height one", "Welcome! Please login", "1", false},
		{"placeholder visible", "Welcome! Please login", "21", true},
		{"other text collapsed", "Hello", "0", true},
		{"other text visible", "Hello", "21", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := node(t, fmt.Sprintf(
				`<view><subviews><label id="l1" text=%q><rect key="frame" y="5" height=%q/></label></subviews></view>`,
				tt.label, tt.height))
			got := ScreenComponents(screen, ScreenOptions{})
			if kept := len(got) == 1; kept != tt.kept {
				t.Errorf("kept = %v, want %v", kept, tt.kept)
			}
		})
	}
}

func TestScreenComponentsCustomPlaceholder(t *testing.T) {
	screen := node(t, `<view><subviews>
  <label id="l1" text="Lorem"><rect key="frame" y="5" height="0"/></label>
  <label id="l2" text="Welcome! Please login"><rect key="frame" y="6" height="0"/></label>
</subviews></view>`)

	got := ids(ScreenComponents(screen, ScreenOptions{PlaceholderLabel: "Lorem"}))
	if !reflect.DeepEqual(got, []string{"l2"}) {
		t.Errorf("ids = %v, want [l2]", got)
	}
}

func TestScreenComponentsEmpty(t *testing.T) {
	if got := ScreenComponents(nil, ScreenOptions{}); len(got) != 0 {
		t.Errorf("ScreenComponents(nil) = %v, want empty", got)
	}
	screen := node(t, `<viewController><connections/><view key="view"/></viewController>`)
	if got := ScreenComponents(screen, ScreenOptions{}); len(got) != 0 {
		t.Errorf("ScreenComponents() = %v, want empty", got)
	}
}

func TestWithoutStackChildren(t *testing.T) {
	l1 := Component{Kind: KindLabel, ID: "l1", Text: "Name"}
	b1 := Component{Kind: KindButton, ID: "b1", Text: "Go"}
	s1 := Component{Kind: KindHStack, ID: "s1", Children: []Component{l1, b1}}

	got := ids(WithoutStackChildren([]Component{l1, b1, s1}))
	if !reflect.DeepEqual(got, []string{"s1"}) {
		t.Errorf("WithoutStackChildren() = %v, want [s1]", got)
	}
}

func TestWithoutStackChildrenKeepsVStackChildren(t *testing.T) {
	l1 := Component{Kind: KindLabel, ID: "l1"}
	v1 := Component{Kind: KindVStack, ID: "v1", Children: []Component{l1}}
	t1 := Component{Kind: KindTextField, ID: "t1"}

	got := ids(WithoutStackChildren([]Component{l1, v1, t1}))
	want := []string{"l1", "v1", "t1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WithoutStackChildren() = %v, want %v", got, want)
	}
}

func TestWithoutStackChildrenEndToEnd(t *testing.T) {
	screen := node(t, `<view><subviews>
  <stackView id="s1">
    <rect key="frame" y="50"/>
    <subviews>
      <label id="l1" text="Name"><rect key="frame" y="0"/></label>
      <button id="b1" title="Go"><rect key="frame" y="0"/></button>
    </subviews>
  </stackView>
  <label id="l2" text="Footer"><rect key="frame" y="400"/></label>
</subviews></view>`)

	list := ScreenComponents(screen, ScreenOptions{})
	if got := ids(list); !reflect.DeepEqual(got, []string{"l1", "b1", "s1", "l2"}) {
		t.Fatalf("ScreenComponents() = %v", got)
	}
	if got := ids(WithoutStackChildren(list)); !reflect.DeepEqual(got, []string{"s1", "l2"}) {
		t.Errorf("WithoutStackChildren() = %v, want [s1 l2]", got)
	}
}

func ExampleScreenComponents() {
	doc, _ := storyboard.Parse([]byte(`<viewController id="vc">
  <view key="view">
    <subviews>
      <button id="b1" title="Sign in"><rect key="frame" y="200"/></button>
      <label id="l1" text="Hello"><rect key="frame" y="20"/></label>
    </subviews>
  </view>
</viewController>`))

	for _, c := range ScreenComponents(doc.Root(), ScreenOptions{}) {
		fmt.Println(c)
	}
	// Output:
	// Label#l1("Hello")
	// Button#b1("Sign in")
}
