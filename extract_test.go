package pagemask

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const ns2017 = "http://schema.primaresearch.org/PAGE/gts/pagecontent/2017-07-15"

// pageXML wraps body in a PcGts document with a 100x80 page.
func pageXML(ns, body string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<PcGts xmlns="%s">
  <Metadata><Creator>test</Creator></Metadata>
  <Page imageFilename="page.png" imageWidth="100" imageHeight="80">
%s
  </Page>
</PcGts>`, ns, body)
}

const sampleBody = `
    <ReadingOrder><OrderedGroup id="g0"/></ReadingOrder>
    <TextRegion id="r1" type="heading">
      <Coords points="0,0 10,0 10,10 0,10"/>
      <TextLine id="l1">
        <Coords points="1,1 9,1 9,4 1,4"/>
        <Baseline points="1,4 9,4"/>
      </TextLine>
      <TextLine id="l2">
        <Coords points="1,5 9,5 9,8 1,8"/>
        <Baseline points="1,8 5,8 9,8"/>
      </TextLine>
    </TextRegion>
    <ImageRegion id="r2">
      <Coords points="20,20 40,20 40,40 20,40"/>
    </ImageRegion>
    <GraphicRegion id="r3" type="stamp">
      <Coords points="50,50 60,50 60,60"/>
    </GraphicRegion>`

func extractString(t *testing.T, doc string, opts ...Option) *PageDocument {
	t.Helper()
	got, err := Extract(strings.NewReader(doc), "page", NewSettings(opts...))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return got
}

func TestExtract_AllTypes(t *testing.T) {
	doc := extractString(t, pageXML(ns2017, sampleBody))

	if doc.Width != 100 || doc.Height != 80 {
		t.Errorf("size = %dx%d, want 100x80", doc.Width, doc.Height)
	}
	if doc.Name != "page" || doc.ImageFilename != "page.png" {
		t.Errorf("Name = %q, ImageFilename = %q", doc.Name, doc.ImageFilename)
	}
	// ReadingOrder has no Coords and contributes nothing.
	if len(doc.Regions) != 3 {
		t.Fatalf("len(Regions) = %d, want 3", len(doc.Regions))
	}

	want := []struct {
		kind    RegionKind
		subType string
		points  int
	}{
		{KindTextRegion, TextHeading, 4},
		{KindImageRegion, "", 4},
		{KindGraphicRegion, GraphicStamp, 3},
	}
	for i, w := range want {
		r := doc.Regions[i]
		if r.Kind != w.kind || r.SubType != w.subType || len(r.Points) != w.points {
			t.Errorf("region %d = %s/%q with %d points, want %s/%q with %d",
				i, r.Kind, r.SubType, len(r.Points), w.kind, w.subType, w.points)
		}
	}
	if doc.Regions[1].Points[2] != (Point{X: 40, Y: 40}) {
		t.Errorf("ImageRegion point 2 = %v", doc.Regions[1].Points[2])
	}
}

func TestExtract_TextNonTextUsesRegionCoords(t *testing.T) {
	doc := extractString(t, pageXML(ns2017, sampleBody), WithMode(ModeTextNonText))
	if len(doc.Regions) != 3 {
		t.Errorf("len(Regions) = %d, want 3", len(doc.Regions))
	}
}

func TestExtract_TextLine(t *testing.T) {
	doc := extractString(t, pageXML(ns2017, sampleBody), WithMode(ModeTextLine))

	if len(doc.Regions) != 2 {
		t.Fatalf("len(Regions) = %d, want 2", len(doc.Regions))
	}
	for _, r := range doc.Regions {
		if r.Kind != KindTextRegion || r.SubType != TextHeading {
			t.Errorf("text line region = %s/%q, want parent TextRegion/heading", r.Kind, r.SubType)
		}
	}
	if doc.Regions[1].Points[0] != (Point{X: 1, Y: 5}) {
		t.Errorf("second line first point = %v", doc.Regions[1].Points[0])
	}
}

func TestExtract_Baseline(t *testing.T) {
	doc := extractString(t, pageXML(ns2017, sampleBody), WithMode(ModeBaseline))

	if len(doc.Regions) != 2 {
		t.Fatalf("len(Regions) = %d, want 2", len(doc.Regions))
	}
	if len(doc.Regions[0].Points) != 2 || len(doc.Regions[1].Points) != 3 {
		t.Errorf("baseline points = %v, %v", doc.Regions[0].Points, doc.Regions[1].Points)
	}
}

func TestExtract_NamespaceProbing(t *testing.T) {
	for _, v := range SchemaVersions() {
		t.Run(string(v), func(t *testing.T) {
			// The configured version is 2017 for every document.
			doc := extractString(t, pageXML(v.Namespace(), sampleBody))
			if len(doc.Regions) != 3 {
				t.Errorf("len(Regions) = %d, want 3", len(doc.Regions))
			}
		})
	}
}

func TestExtract_UnknownNamespace(t *testing.T) {
	_, err := Extract(strings.NewReader(pageXML("http://example.com/page", sampleBody)), "page", NewSettings())
	if !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("error = %v, want ErrMalformedDocument", err)
	}
}

func TestExtract_ForeignElementsIgnored(t *testing.T) {
	body := sampleBody + `
    <x:TextRegion xmlns:x="http://example.com/other"><x:Coords points="0,0 5,5 0,5"/></x:TextRegion>`
	doc := extractString(t, pageXML(ns2017, body))
	if len(doc.Regions) != 3 {
		t.Errorf("len(Regions) = %d, want 3", len(doc.Regions))
	}
}

func TestExtract_UnknownElementWarns(t *testing.T) {
	buf := captureLogs(t, slog.LevelWarn)

	body := `<FooRegion id="f"><Coords points="0,0 5,0 5,5"/></FooRegion>` + sampleBody
	doc := extractString(t, pageXML(ns2017, body))

	if len(doc.Regions) != 3 {
		t.Errorf("len(Regions) = %d, want 3", len(doc.Regions))
	}
	if !strings.Contains(buf.String(), "FooRegion") {
		t.Errorf("expected warning naming FooRegion, got: %s", buf.String())
	}
}

func TestExtract_ImageFilenameMismatchLogged(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	if _, err := Extract(strings.NewReader(pageXML(ns2017, "")), "scan_0001", NewSettings()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "image_filename=page") {
		t.Errorf("expected mismatch log, got: %s", buf.String())
	}
}

func TestExtract_NoImageFilenameNotLogged(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	doc := strings.Replace(pageXML(ns2017, ""), ` imageFilename="page.png"`, "", 1)
	got, err := Extract(strings.NewReader(doc), "scan_0001", NewSettings())
	if err != nil {
		t.Fatal(err)
	}
	if got.ImageFilename != "" {
		t.Errorf("ImageFilename = %q, want empty", got.ImageFilename)
	}
	if strings.Contains(buf.String(), "differs") {
		t.Errorf("unexpected mismatch log: %s", buf.String())
	}
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not xml", "this is not xml", ErrMalformedDocument},
		{"truncated", `<PcGts xmlns="` + ns2017 + `"><Page imageWidth="1"`, ErrMalformedDocument},
		{"no page", `<PcGts xmlns="` + ns2017 + `"><Metadata/></PcGts>`, ErrMalformedDocument},
		{
			"missing width",
			`<PcGts xmlns="` + ns2017 + `"><Page imageHeight="10"/></PcGts>`,
			ErrMissingDimensions,
		},
		{
			"missing height",
			`<PcGts xmlns="` + ns2017 + `"><Page imageWidth="10"/></PcGts>`,
			ErrMissingDimensions,
		},
		{
			"zero width",
			`<PcGts xmlns="` + ns2017 + `"><Page imageWidth="0" imageHeight="10"/></PcGts>`,
			ErrInvalidDimensions,
		},
		{
			"non-integer height",
			`<PcGts xmlns="` + ns2017 + `"><Page imageWidth="10" imageHeight="ten"/></PcGts>`,
			ErrInvalidDimensions,
		},
		{
			"bad points",
			pageXML(ns2017, `<TextRegion id="r9"><Coords points="0,0 10;0 10,10"/></TextRegion>`),
			ErrInvalidPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(strings.NewReader(tt.doc), "page", NewSettings())
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExtract_BadPointsNamesRegion(t *testing.T) {
	doc := pageXML(ns2017, `<TextRegion id="r9"><Coords points="0,0 x,1"/></TextRegion>`)
	_, err := Extract(strings.NewReader(doc), "page", NewSettings())
	if err == nil || !strings.Contains(err.Error(), `"r9"`) {
		t.Errorf("error = %v, want region id in message", err)
	}
}

func TestExtract_DeclaredCharset(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>
<PcGts xmlns="` + ns2017 + `">
  <Page imageFilename="s` + "\xe9" + `ance.png" imageWidth="10" imageHeight="10">
    <TextRegion id="r1"><Coords points="0,0 5,0 5,5"/></TextRegion>
  </Page>
</PcGts>`

	got, err := Extract(strings.NewReader(doc), "séance", NewSettings())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got.ImageFilename != "séance.png" {
		t.Errorf("ImageFilename = %q, want séance.png", got.ImageFilename)
	}
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan_0001.xml")
	if err := os.WriteFile(path, []byte(pageXML(ns2017, sampleBody)), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := ExtractFile(path, NewSettings())
	if err != nil {
		t.Fatalf("ExtractFile() error = %v", err)
	}
	if doc.Name != "scan_0001" {
		t.Errorf("Name = %q, want scan_0001", doc.Name)
	}

	if _, err := ExtractFile(filepath.Join(t.TempDir(), "missing.xml"), NewSettings()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
}

func TestParsePoints(t *testing.T) {
	tests := []struct {
		in   string
		want []Point
	}{
		{"", nil},
		{"   ", nil},
		{"1,2", []Point{{1, 2}}},
		{"0,0 10,0  10,10\n0,10", []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}},
		{"-3,4", []Point{{-3, 4}}},
	}
	for _, tt := range tests {
		got, err := ParsePoints(tt.in)
		if err != nil {
			t.Errorf("ParsePoints(%q) error = %v", tt.in, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParsePoints(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParsePoints(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}

	for _, bad := range []string{"1", "1,", ",2", "1.5,2", "a,b", "1,2,3"} {
		if _, err := ParsePoints(bad); !errors.Is(err, ErrInvalidPoints) {
			t.Errorf("ParsePoints(%q) error = %v, want ErrInvalidPoints", bad, err)
		}
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"/data/page/scan_0001.xml": "scan_0001",
		"scan.tar.xml":             "scan.tar",
		"noext":                    "noext",
		"page.png":                 "page",
		"":                         "",
	}
	for in, want := range tests {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}
