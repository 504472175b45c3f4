package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b-1", BuildID("b-1")},
		{"Stage", KeyStage, "pages", Stage("pages")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "index.md", File("index.md")},
		{"Output", KeyOutput, "public/index.html", Output("public/index.html")},
		{"Rule", KeyRule, "nested-list", Rule("nested-list")},
		{"Event", KeyEvent, "WRITE", Event("WRITE")},
		{"Addr", KeyAddr, ":9090", Addr(":9090")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for numeric & float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
	if v := Blocks(3); v.Key != KeyBlocks || v.Value.Int64() != 3 {
		t.Fatalf("Blocks mismatch: %v", v)
	}
	if v := BlockIndex(2); v.Key != KeyBlockIndex {
		t.Fatalf("BlockIndex key mismatch: %s", v.Key)
	}
	if v := Pages(7); v.Key != KeyPages {
		t.Fatalf("Pages key mismatch: %s", v.Key)
	}
	if v := Skipped(1); v.Key != KeySkipped {
		t.Fatalf("Skipped key mismatch: %s", v.Key)
	}
	if v := Findings(4); v.Key != KeyFindings {
		t.Fatalf("Findings key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("Expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
