package adapters

import (
	"errors"
	"strings"
	"testing"

	"github.com/Sena-ops/lintmerge/internal/model"
)

func TestParseClangTidyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		want model.Issue
	}{
		{
			name: "full_location",
			line: "/a/b.h:42:7: warning: foo is unused [bugprone-foo]",
			ok:   true,
			want: model.Issue{Line: 42, Column: 7, Severity: model.SevWarning, Rule: "bugprone-foo",
				Message: "/a/b.h:42:7: warning: foo is unused [bugprone-foo]"},
		},
		{
			name: "no_colons",
			line: "garbage warning: no colons here",
			ok:   true,
			want: model.Issue{Severity: model.SevWarning, Rule: "unknown", Message: "garbage warning: no colons here"},
		},
		{
			name: "error_line",
			line: "x.cpp:3:1: error: unknown type name 'foo'",
			ok:   true,
			want: model.Issue{Line: 3, Column: 1, Severity: model.SevError, Rule: "unknown",
				Message: "x.cpp:3:1: error: unknown type name 'foo'"},
		},
		{
			name: "both_markers_is_warning",
			line: "x.h:1:2: error: warning: odd [r]",
			ok:   true,
			want: model.Issue{Line: 1, Column: 2, Severity: model.SevWarning, Rule: "r",
				Message: "x.h:1:2: error: warning: odd [r]"},
		},
		{
			name: "last_bracket_wins",
			line: "x.h:5:9: warning: use [[nodiscard]] here [modernize-use-nodiscard]",
			ok:   true,
			want: model.Issue{Line: 5, Column: 9, Severity: model.SevWarning, Rule: "modernize-use-nodiscard",
				Message: "x.h:5:9: warning: use [[nodiscard]] here [modernize-use-nodiscard]"},
		},
		{
			name: "unclosed_bracket",
			line: "x.h:5:9: warning: oops [abc",
			ok:   true,
			want: model.Issue{Line: 5, Column: 9, Severity: model.SevWarning, Rule: "unknown",
				Message: "x.h:5:9: warning: oops [abc"},
		},
		{name: "not_a_diagnostic", line: "3 warnings generated.", ok: false},
		{name: "empty", line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClangTidyLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestParseClangTidyBytesFillsFile(t *testing.T) {
	out := "/inc/v.h:10:4: warning: narrowing [bugprone-narrowing-conversions]\n" +
		"   10 |   int x = y;\n" +
		"      |           ^\n" +
		"/inc/v.h:12:1: error: expected ';' [clang-diagnostic-error]\r\n" +
		"2 warnings generated.\n"

	issues := ParseClangTidyBytes([]byte(out), "include/v.h")
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %+v", len(issues), issues)
	}
	for _, i := range issues {
		if i.File != "include/v.h" {
			t.Errorf("file = %q", i.File)
		}
	}
	if issues[1].Rule != "clang-diagnostic-error" || issues[1].Severity != model.SevError {
		t.Errorf("unexpected second issue: %+v", issues[1])
	}
}

func TestParseClangTidyBytesLongLine(t *testing.T) {
	long := "/inc/v.h:5:1: warning: " + strings.Repeat("x", 2<<20) + " [r2]"
	out := "/inc/v.h:1:1: warning: a [r1]\n" + long + "\n/inc/v.h:9:2: error: b [r3]\n"

	issues := ParseClangTidyBytes([]byte(out), "include/v.h")
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	for i, want := range []string{"r1", "r2", "r3"} {
		if issues[i].Rule != want {
			t.Errorf("issue %d rule = %q, want %q", i, issues[i].Rule, want)
		}
	}
}

func TestParseCppcheckBytes(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<results version="2">
  <cppcheck version="2.13"/>
  <errors>
    <error severity="error" id="nullPointer" msg="deref of null"><location file="x.h" line="10" column="3"/></error>
  </errors>
</results>`

	issues, err := ParseCppcheckBytes([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	want := model.Issue{File: "x.h", Line: 10, Column: 3, Severity: model.SevError, Message: "deref of null", Rule: "nullPointer"}
	if issues[0] != want {
		t.Errorf("got %+v, want %+v", issues[0], want)
	}
}

func TestParseCppcheckDegradation(t *testing.T) {
	doc := `<results version="2"><errors>
<error severity="information" msg="no location here"/>
<error severity="style" msg="missing id"><location file="a.h" line="x" column=""/><location file="b.h" line="9"/></error>
<error severity="bogus" id="odd" msg="odd"><location file="c.h" line="-4" column="2"/></error>
</errors></results>`

	issues, err := ParseCppcheckBytes([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected located entries only, got %d", len(issues))
	}
	if issues[0].File != "a.h" || issues[0].Line != 0 || issues[0].Column != 0 {
		t.Errorf("first location should win and degrade to 0: %+v", issues[0])
	}
	if issues[0].Rule != model.UnknownRule || issues[0].Severity != model.SevStyle {
		t.Errorf("unexpected rule/severity: %+v", issues[0])
	}
	if issues[1].Severity != model.SevUnknown || issues[1].Line != 0 {
		t.Errorf("unexpected degradation: %+v", issues[1])
	}
}

func TestParseCppcheckMalformed(t *testing.T) {
	inputs := map[string]string{
		"truncated": `<results version="2"><errors><error severity="error" id="a" msg="m"><location file="x.h" line="1"`,
		"unclosed":  `<results><errors>`,
		"empty":     ``,
		"not_xml":   `Checking include/bluestl/vector.h ...`,
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			issues, err := ParseCppcheckBytes([]byte(in))
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			if issues == nil || len(issues) != 0 {
				t.Fatalf("expected empty non-nil list, got %#v", issues)
			}
		})
	}
}

const analyzerFixture = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
 <key>clang_version</key>
 <string>clang version 17.0.6</string>
 <key>diagnostics</key>
 <array>
  <dict>
   <key>description</key><string>Called C++ object pointer is null</string>
   <key>category</key><string>Logic error</string>
   <key>type</key><string>Called C++ object pointer is null</string>
   <key>check_name</key><string>core.CallAndMessage</string>
   <key>location</key>
   <dict>
    <key>line</key><integer>88</integer>
    <key>col</key><integer>5</integer>
    <key>file</key><integer>1</integer>
   </dict>
  </dict>
  <dict>
   <key>description</key><string>Value stored to 'n' is never read</string>
   <key>category</key><string>Dead store</string>
   <key>type</key><string>Dead assignment</string>
   <key>location</key>
   <dict>
    <key>line</key><integer>12</integer>
    <key>col</key><integer>3</integer>
    <key>file</key><integer>7</integer>
   </dict>
  </dict>
 </array>
 <key>files</key>
 <array>
  <string>tests/test_vector.cpp</string>
  <string>include/bluestl/vector.h</string>
 </array>
</dict>
</plist>`

func TestParsePlistBytes(t *testing.T) {
	issues, err := ParsePlistBytes([]byte(analyzerFixture), "tests/test_vector.cpp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}

	first := issues[0]
	if first.File != "include/bluestl/vector.h" || first.Line != 88 || first.Column != 5 {
		t.Errorf("unexpected location: %+v", first)
	}
	if first.Rule != "core.CallAndMessage" || first.Severity != model.SevWarning {
		t.Errorf("unexpected rule/severity: %+v", first)
	}

	second := issues[1]
	if second.File != "tests/test_vector.cpp" {
		t.Errorf("out of range file index should fall back, got %q", second.File)
	}
	if second.Rule != model.UnknownRule {
		t.Errorf("rule = %q", second.Rule)
	}
}

func TestParsePlistMalformed(t *testing.T) {
	in := `<?xml version="1.0"?><plist version="1.0"><dict><key>files</key><array>`
	issues, err := ParsePlistBytes([]byte(in), "a.cpp")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %d", len(issues))
	}
}

func TestNormalizeDispatch(t *testing.T) {
	raw := model.RawOutput{Tool: ToolClangTidy, File: "a.h", Data: []byte("a.h:1:1: warning: w [r1]\n")}
	issues, err := Normalize(ToolClangTidy, raw)
	if err != nil || len(issues) != 1 {
		t.Fatalf("clang-tidy dispatch: %v %+v", err, issues)
	}

	issues, err = Normalize("pvs-studio", raw)
	if !errors.Is(err, ErrUnsupportedTool) {
		t.Fatalf("expected ErrUnsupportedTool, got %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("unsupported tool produced issues: %+v", issues)
	}
	if Supported("pvs-studio") || !Supported(ToolCppcheck) {
		t.Fatal("Supported mismatch")
	}
}
