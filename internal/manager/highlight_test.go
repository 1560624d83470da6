package manager

import (
	"strings"
	"testing"

	"github.com/Yugz29/DevNote/internal/model"
)

func joinSegments(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestHighlightCaseInsensitive(t *testing.T) {
	segs := HighlightSegments("Deploy notes for deploy day", "DEPLOY")
	matched := 0
	for _, s := range segs {
		if s.Match {
			matched++
			if !strings.EqualFold(s.Text, "deploy") {
				t.Fatalf("matched segment %q", s.Text)
			}
		}
	}
	if matched != 2 {
		t.Fatalf("matched %d segments, want 2", matched)
	}
	if joinSegments(segs) != "Deploy notes for deploy day" {
		t.Fatalf("segments do not reconstruct the source text")
	}
}

func TestHighlightQueryIsLiteral(t *testing.T) {
	// A dot in the query must not act as a wildcard.
	segs := HighlightSegments("aXb and a.b", "a.b")
	matched := 0
	for _, s := range segs {
		if s.Match {
			matched++
			if s.Text != "a.b" {
				t.Fatalf("matched %q, want the literal a.b", s.Text)
			}
		}
	}
	if matched != 1 {
		t.Fatalf("matched %d, want 1", matched)
	}

	// Broken regex syntax is just characters.
	segs = HighlightSegments("count[0] = 1", "count[0]")
	if len(segs) != 2 || !segs[0].Match {
		t.Fatalf("bracket query did not match literally: %+v", segs)
	}
}

func TestHighlightBlankQuery(t *testing.T) {
	for _, q := range []string{"", "   "} {
		segs := HighlightSegments("text", q)
		if len(segs) != 1 || segs[0].Match {
			t.Fatalf("blank query %q produced %+v", q, segs)
		}
	}
}

func TestHighlightNoHit(t *testing.T) {
	segs := HighlightSegments("unrelated", "zzz")
	if len(segs) != 1 || segs[0].Match || segs[0].Text != "unrelated" {
		t.Fatalf("segs = %+v", segs)
	}
}

func TestMatches(t *testing.T) {
	if !Matches("Shopping List", "shop") {
		t.Fatalf("case-insensitive contains failed")
	}
	if Matches("anything", "  ") {
		t.Fatalf("blank query matched")
	}
}

func TestTargetIndex(t *testing.T) {
	items := []model.Note{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if got := TargetIndex(items, "b"); got != 1 {
		t.Fatalf("index = %d, want 1", got)
	}
	if got := TargetIndex(items, "missing"); got != -1 {
		t.Fatalf("absent item index = %d, want -1", got)
	}
}
