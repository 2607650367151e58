package storyboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/storyswift/pkg/errors"
)

const sampleStoryboard = `<?xml version="1.0" encoding="UTF-8"?>
<document type="com.apple.InterfaceBuilder3.CocoaTouch.Storyboard" version="3.0">
  <scenes>
    <scene sceneID="1">
      <objects>
        <navigationController id="nav1" sceneMemberID="viewController">
          <connections>
            <segue destination="vc1" kind="relationship" relationship="rootViewController" id="rel1"/>
          </connections>
        </navigationController>
      </objects>
    </scene>
    <scene sceneID="2">
      <objects>
        <viewController storyboardIdentifier="Home" id="vc1" customClass="HomeViewController">
          <view key="view" id="view1">
            <subviews>
              <label id="label1" text="Welcome!">
                <rect key="frame" x="20" y="40" width="200" height="30"/>
              </label>
            </subviews>
          </view>
        </viewController>
      </objects>
    </scene>
  </scenes>
</document>`

func mustParse(t *testing.T, xml string) *Document {
	t.Helper()
	doc, err := Parse([]byte(xml))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return doc
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Main.storyboard")
	if err := os.WriteFile(path, []byte(sampleStoryboard), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Root() == nil {
		t.Fatal("Root() = nil, want document element")
	}
	if doc.Root().Tag != "document" {
		t.Errorf("Root().Tag = %q, want document", doc.Root().Tag)
	}
	if doc.Path() != path {
		t.Errorf("Path() = %q, want %q", doc.Path(), path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/invalid/path/to/file.storyboard")
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`<document><scenes></document>`))
	if err == nil {
		t.Fatal("Parse() should fail for malformed XML")
	}
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeParse)
	}
	if !errors.IsFatal(err) {
		t.Error("parse errors should be fatal")
	}
}

func TestEmptyDocumentHasNoRoot(t *testing.T) {
	doc := mustParse(t, `<?xml version="1.0" encoding="UTF-8"?>`)
	if doc.Root() != nil {
		t.Error("Root() should be nil for a document without elements")
	}
	if len(doc.ViewControllers()) != 0 {
		t.Error("ViewControllers() should be empty")
	}
	if got := doc.Find("//segue"); len(got) != 0 {
		t.Errorf("Find() = %d nodes, want 0", len(got))
	}
}

func TestSceneQueries(t *testing.T) {
	doc := mustParse(t, sampleStoryboard)

	if got := len(doc.ViewControllers()); got != 1 {
		t.Errorf("ViewControllers() = %d, want 1", got)
	}
	if got := len(doc.NavigationControllers()); got != 1 {
		t.Errorf("NavigationControllers() = %d, want 1", got)
	}
	if got := len(doc.TabBarControllers()); got != 0 {
		t.Errorf("TabBarControllers() = %d, want 0", got)
	}
}

func TestFindAndElementByID(t *testing.T) {
	doc := mustParse(t, sampleStoryboard)

	segues := doc.Find("//segue")
	if len(segues) != 1 {
		t.Fatalf("Find(//segue) = %d, want 1", len(segues))
	}
	if v := AttrOr(segues[0], "relationship", ""); v != "rootViewController" {
		t.Errorf("relationship = %q, want rootViewController", v)
	}

	vc, ok := doc.ElementByID("vc1")
	if !ok {
		t.Fatal("ElementByID(vc1) not found")
	}
	if vc.Tag != "viewController" {
		t.Errorf("ElementByID(vc1).Tag = %q", vc.Tag)
	}
	if _, ok := doc.ElementByID("missing"); ok {
		t.Error("ElementByID(missing) should not be found")
	}
}

func TestAttrAbsentVersusEmpty(t *testing.T) {
	doc := mustParse(t, `<document><label id="l1" text=""/></document>`)
	label := First(doc.Root(), "label")

	v, ok := Attr(label, "text")
	if !ok || v != "" {
		t.Errorf("Attr(text) = %q, %v; want empty, present", v, ok)
	}
	if _, ok := Attr(label, "missing"); ok {
		t.Error("Attr(missing) should be absent")
	}
	if got := AttrOr(label, "missing", "def"); got != "def" {
		t.Errorf("AttrOr() = %q, want def", got)
	}
	if _, ok := Attr(nil, "id"); ok {
		t.Error("Attr(nil) should be absent")
	}
}

func TestQueryPreservesOrder(t *testing.T) {
	doc := mustParse(t, `<document><a id="1"/><b/><a id="2"/><a id="3"/></document>`)
	got := Query(doc.Root(), "a")
	var ids []string
	for _, n := range got {
		ids = append(ids, AttrOr(n, "id", ""))
	}
	if strings.Join(ids, ",") != "1,2,3" {
		t.Errorf("Query() order = %v, want [1 2 3]", ids)
	}
}

func TestDescendantsPreOrder(t *testing.T) {
	doc := mustParse(t, `<document><a><b><c/></b><d/></a><e/></document>`)
	var tags []string
	for _, n := range Descendants(doc.Root()) {
		tags = append(tags, n.Tag)
	}
	if got := strings.Join(tags, ""); got != "abcde" {
		t.Errorf("Descendants() = %q, want abcde", got)
	}
}

func TestXibQueries(t *testing.T) {
	doc := mustParse(t, `<document type="com.apple.InterfaceBuilder3.CocoaTouch.XIB">
  <objects>
    <view id="view1"/>
    <tableViewCell id="cell1">
      <tableViewCellContentView key="contentView" id="content1"/>
    </tableViewCell>
  </objects>
</document>`)

	if got := len(doc.StandaloneViews()); got != 1 {
		t.Errorf("StandaloneViews() = %d, want 1", got)
	}
	content := doc.TableCellContentView()
	if content == nil || AttrOr(content, "id", "") != "content1" {
		t.Errorf("TableCellContentView() = %v, want content1", content)
	}
}

func TestPretty(t *testing.T) {
	doc := mustParse(t, `<document><label id="l1" text="Hi"><rect key="frame"/></label></document>`)
	out := Pretty(First(doc.Root(), "label"))
	if !strings.Contains(out, `<label id="l1" text="Hi">`) {
		t.Errorf("Pretty() = %q", out)
	}
	if Pretty(nil) != "" {
		t.Error("Pretty(nil) should be empty")
	}
}

func TestFindDocumentOrder(t *testing.T) {
	doc := mustParse(t, `<document>
  <a><b><segue id="deep"/></b></a>
  <segue id="shallow"/>
</document>`)

	var got []string
	for _, n := range doc.Find("//segue") {
		got = append(got, AttrOr(n, "id", ""))
	}
	if strings.Join(got, ",") != "deep,shallow" {
		t.Errorf("Find(//segue) = %v, want [deep shallow]", got)
	}

	got = nil
	for _, n := range Find(doc.Root(), ".//segue") {
		got = append(got, AttrOr(n, "id", ""))
	}
	if strings.Join(got, ",") != "deep,shallow" {
		t.Errorf("Find(root, .//segue) = %v, want [deep shallow]", got)
	}
}
