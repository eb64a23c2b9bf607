package collect

import (
	"encoding/hex"
	"errors"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/jh3/codep/internal/clock"
	"github.com/jh3/codep/internal/entry"
)

type sliceSource []entry.Raw

func (s sliceSource) Entries() (iter.Seq[entry.Raw], error) {
	return slices.Values([]entry.Raw(s)), nil
}

type failingSource struct{ err error }

func (f failingSource) Entries() (iter.Seq[entry.Raw], error) {
	return nil, f.err
}

var (
	all  = Selection{Files: true, Dirs: true, Remotes: true}
	base = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func at(sec int) time.Time {
	return base.Add(time.Duration(sec) * time.Second)
}

func raws(t *testing.T, got []entry.Resolved) []string {
	t.Helper()
	out := make([]string, len(got))
	for i, r := range got {
		out[i] = r.Raw
	}
	return out
}

func TestSortByRecency(t *testing.T) {
	entries := []entry.Raw{
		{URI: "file:///10", ModifiedAt: at(10)},
		{URI: "file:///30", ModifiedAt: at(30)},
		{URI: "file:///20", ModifiedAt: at(20)},
		{URI: "file:///20b", ModifiedAt: at(20)},
	}
	SortByRecency(entries)
	var got []string
	for _, e := range entries {
		got = append(got, e.URI)
	}
	want := []string{"file:///30", "file:///20", "file:///20b", "file:///10"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestCutoff(t *testing.T) {
	now := base
	got, err := Cutoff(now, 7)
	if err != nil {
		t.Fatalf("Cutoff failed: %v", err)
	}
	if want := now.Add(-7 * 86400 * time.Second); !got.Equal(want) {
		t.Errorf("Cutoff = %v, want %v", got, want)
	}

	if _, err := Cutoff(now, 1<<31); !errors.Is(err, ErrMaxAgeTooLarge) {
		t.Errorf("error = %v, want ErrMaxAgeTooLarge", err)
	}
}

func TestCollectAgeWindow(t *testing.T) {
	days := uint(7)
	now := base
	window := 7 * 86400
	src := sliceSource{
		{Kind: entry.KindDir, URI: "file:///boundary", ModifiedAt: now.Add(-time.Duration(window) * time.Second)},
		{Kind: entry.KindDir, URI: "file:///too-old", ModifiedAt: now.Add(-time.Duration(window+1) * time.Second)},
		{Kind: entry.KindDir, URI: "file:///fresh", ModifiedAt: now.Add(-time.Hour)},
		{Kind: entry.KindDir, URI: "file:///untimed"},
	}
	got, err := Collect(src, Options{Select: all, MaxAgeDays: &days, Clock: clock.Fixed(now)})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	want := []string{"file:///fresh", "file:///boundary", "file:///untimed"}
	if g := raws(t, got); !slices.Equal(g, want) {
		t.Errorf("got %v, want %v", g, want)
	}
}

func TestCollectAgeTooLarge(t *testing.T) {
	days := uint(1 << 31)
	_, err := Collect(sliceSource{}, Options{Select: all, MaxAgeDays: &days})
	if !errors.Is(err, ErrMaxAgeTooLarge) {
		t.Errorf("error = %v, want ErrMaxAgeTooLarge", err)
	}
}

func TestCollectLimit(t *testing.T) {
	src := sliceSource{
		{Kind: entry.KindDir, URI: "file:///a", ModifiedAt: at(1)},
		{Kind: entry.KindDir, URI: "file:///b", ModifiedAt: at(3)},
		{Kind: entry.KindDir, URI: "file:///c", ModifiedAt: at(2)},
	}
	got, err := Collect(src, Options{Select: all, Limit: 2})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if g, want := raws(t, got), []string{"file:///b", "file:///c"}; !slices.Equal(g, want) {
		t.Errorf("got %v, want %v", g, want)
	}
}

func TestCollectDropsBadEntries(t *testing.T) {
	src := sliceSource{
		{Kind: entry.KindDir, URI: "file:///ok%20dir"},
		{Kind: entry.KindDir, URI: "file:///bad%zz"},
		{Kind: entry.KindFile, URI: "untitled:Untitled-1"},
		{Kind: entry.KindDir, URI: "vscode-remote://codespaces/x"},
		{Kind: entry.KindDir, URI: "vscode-remote://ssh-remote+box/srv"},
	}
	got, err := Collect(src, Options{Select: all})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	want := []string{"file:///ok dir", "vscode-remote://ssh-remote+box/srv"}
	if g := raws(t, got); !slices.Equal(g, want) {
		t.Errorf("got %v, want %v", g, want)
	}
	if got[0].Path != "/ok dir" {
		t.Errorf("Path = %q", got[0].Path)
	}
	if got[1].Remote.String() != "box (ssh-remote)" {
		t.Errorf("Remote = %q", got[1].Remote.String())
	}
}

func TestCollectSelection(t *testing.T) {
	payload := hex.EncodeToString([]byte(`{"hostPath":"/src"}`))
	src := sliceSource{
		{Kind: entry.KindFile, URI: "file:///f"},
		{Kind: entry.KindDir, URI: "file:///d"},
		{Kind: entry.KindDir, URI: "vscode-remote://dev-container+" + payload + "/w"},
	}
	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{"files", Selection{Files: true}, []string{"file:///f"}},
		{"dirs", Selection{Dirs: true}, []string{"file:///d"}},
		{"remotes", Selection{Remotes: true}, []string{"vscode-remote://dev-container+" + payload + "/w"}},
		{"none", Selection{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collect(src, Options{Select: tt.sel})
			if err != nil {
				t.Fatalf("Collect failed: %v", err)
			}
			if g := raws(t, got); !slices.Equal(g, tt.want) {
				t.Errorf("got %v, want %v", g, tt.want)
			}
		})
	}
}

func TestCollectSanitizes(t *testing.T) {
	src := sliceSource{{Kind: entry.KindFile, URI: "file:///a%09b%00c%0Ad"}}
	got, err := Collect(src, Options{Select: all})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(got) != 1 || got[0].Raw != "file:///abcd" || got[0].Path != "/abcd" {
		t.Errorf("got %+v", got)
	}
}

func TestCollectPrintsSourcePath(t *testing.T) {
	src := sliceSource{
		{Kind: entry.KindDir, URI: "file:///home/me/two%20words", Path: "/home/me/two%20words"},
		{Kind: entry.KindDir, URI: "vscode-remote://ssh-remote+box/srv", Path: "/srv"},
		{Kind: entry.KindFile, URI: "file:///home/me/bad", Path: "/home/me/bad%zz"},
		{Kind: entry.KindDir, URI: "file:///home/me/plain"},
	}
	got, err := Collect(src, Options{Select: all})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	want := []string{"/home/me/two words", "/srv", "file:///home/me/plain"}
	if g := raws(t, got); !slices.Equal(g, want) {
		t.Errorf("got %v, want %v", g, want)
	}
	if got[0].Path != "/home/me/two words" || got[1].Remote.Primary != "box" {
		t.Errorf("display fields changed: %+v", got[:2])
	}
}

func TestCollectSourceError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Collect(failingSource{boom}, Options{Select: all}); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}
