package palette

import (
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/winplace/internal/placement"
)

func TestRofiFormatItem_UsesSingleNullSeparator(t *testing.T) {
	b := newRofiBackend()

	out := b.formatItem(Item{
		Label: "7  Top-Left",
		Icon:  "go-top",
		Meta:  "top left 7",
	})

	if got := strings.Count(out, "\x00"); got != 1 {
		t.Fatalf("expected exactly 1 NUL separator, got %d (%q)", got, out)
	}
	if !strings.Contains(out, "\x00icon\x1fgo-top") || !strings.Contains(out, "meta\x1ftop left 7") {
		t.Fatalf("expected icon/meta attributes, got %q", out)
	}
}

func TestRofiFormatItem_DividerIsNonSelectable(t *testing.T) {
	out := newRofiBackend().formatItem(Item{Label: "────", IsDivider: true})

	if !strings.Contains(out, "<span foreground='#666666'>") {
		t.Fatalf("expected dim span for divider, got %q", out)
	}
	if !strings.Contains(out, "\x00nonselectable\x1ftrue") {
		t.Fatalf("expected nonselectable property for divider, got %q", out)
	}
}

func TestDmenuFormatItem_PlainText(t *testing.T) {
	out := newDmenuBackend().formatItem(Item{Label: "a <b>\n", Icon: "x"})
	if out != "a <b>" {
		t.Fatalf("formatItem = %q", out)
	}
}

func TestRofiBuildArgs_SelectsActiveRow(t *testing.T) {
	b := newRofiBackend()
	args := b.buildArgs("Move window", "msg", PlacementItems("center"))

	if !containsArgs(args, "-format", "i") || !containsArg(args, "-no-custom") {
		t.Fatalf("expected index output without custom entries, got %v", args)
	}
	// center sits in the middle of the keypad grid: row 4.
	if !containsArgs(args, "-selected-row", "4") || !containsArgs(args, "-a", "4") {
		t.Fatalf("expected center to be selected and active, got %v", args)
	}
	if !containsArgs(args, "-mesg", "msg") {
		t.Fatalf("expected message bar, got %v", args)
	}
}

func TestBuildArgs_PerBackend(t *testing.T) {
	items := PlacementItems("")
	tests := []struct {
		b    *dmenuLikeBackend
		a, v string
	}{
		{newFuzzelBackend(), "--prompt", "p"},
		{newWofiBackend(), "--prompt", "p"},
		{newDmenuBackend(), "-l", "11"},
	}
	for _, tt := range tests {
		args := tt.b.buildArgs("p", "", items)
		if !containsArgs(args, tt.a, tt.v) {
			t.Errorf("%s args %v missing %s %s", tt.b.command, args, tt.a, tt.v)
		}
	}
}

func TestParseSelection(t *testing.T) {
	items := PlacementItems("")

	got, err := newRofiBackend().parseSelection("2", items)
	if err != nil || got.Action != "place:top-right" {
		t.Fatalf("rofi index selection = %+v, %v", got, err)
	}
	if _, err := newFuzzelBackend().parseSelection("42", items); err == nil {
		t.Fatalf("expected out of range error")
	}

	got, err = newDmenuBackend().parseSelection("3  Bottom-Right", items)
	if err != nil || got.Action != "place:bottom-right" {
		t.Fatalf("dmenu label selection = %+v, %v", got, err)
	}
	if _, err := newWofiBackend().parseSelection("nope", items); err == nil {
		t.Fatalf("expected unknown selection error")
	}
}

func TestPlacementItems_ScreenOrder(t *testing.T) {
	items := PlacementItems("bottom-left")
	if len(items) != 11 {
		t.Fatalf("expected 9 placements, divider and undo, got %d", len(items))
	}
	wantFirstRow := []string{"place:top-left", "place:top-center", "place:top-right"}
	for i, want := range wantFirstRow {
		if items[i].Action != want {
			t.Fatalf("items[%d].Action = %q, want %q", i, items[i].Action, want)
		}
	}
	if !items[6].IsActive || items[6].Action != "place:bottom-left" {
		t.Fatalf("expected bottom-left active, got %+v", items[6])
	}
	if !items[9].IsDivider || items[10].Action != "undo" {
		t.Fatalf("unexpected tail %+v %+v", items[9], items[10])
	}
}

func TestChoosePlacement(t *testing.T) {
	items := PlacementItems("")
	fb := &fakeBackend{picks: []Item{items[9], items[1]}}

	choice, err := ChoosePlacement(fb, "")
	if err != nil {
		t.Fatalf("ChoosePlacement: %v", err)
	}
	if choice.Undo || choice.Placement != placement.TopCenter {
		t.Fatalf("choice = %+v", choice)
	}
	if fb.shown != 2 {
		t.Fatalf("divider pick should re-show the palette, shown %d times", fb.shown)
	}

	choice, err = ChoosePlacement(&fakeBackend{picks: []Item{items[10]}}, "")
	if err != nil || !choice.Undo {
		t.Fatalf("expected undo choice, got %+v, %v", choice, err)
	}

	if _, err := ChoosePlacement(&fakeBackend{}, ""); !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	if _, err := NewBackend("zenity"); err == nil || !strings.Contains(err.Error(), "unknown palette backend") {
		t.Fatalf("err = %v", err)
	}
}

type fakeBackend struct {
	picks []Item
	shown int
}

func (f *fakeBackend) Show(prompt string, items []Item, message string) (Item, error) {
	if f.shown >= len(f.picks) {
		return Item{}, ErrCancelled
	}
	pick := f.picks[f.shown]
	f.shown++
	return pick, nil
}

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func containsArgs(args []string, a string, b string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == a && args[i+1] == b {
			return true
		}
	}
	return false
}
