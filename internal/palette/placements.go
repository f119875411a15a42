package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/winplace/internal/placement"
)

const (
	actionUndo   = "undo"
	actionPrefix = "place:"
)

// Choice is what the user picked from the placement palette.
type Choice struct {
	Placement placement.Placement
	Undo      bool
}

var icons = map[placement.Placement]string{
	placement.TopLeft:      "go-top",
	placement.TopCenter:    "go-up",
	placement.TopRight:     "go-top",
	placement.CenterLeft:   "go-previous",
	placement.Center:       "zoom-fit-best",
	placement.CenterRight:  "go-next",
	placement.BottomLeft:   "go-bottom",
	placement.BottomCenter: "go-down",
	placement.BottomRight:  "go-bottom",
}

// keypadOrder lists placements row by row as they sit on screen.
var keypadOrder = []int{7, 8, 9, 4, 5, 6, 1, 2, 3}

// PlacementItems returns the palette rows: the nine placements in screen
// order, a divider, then undo. last marks the most recent placement, if any.
func PlacementItems(last string) []Item {
	items := make([]Item, 0, len(keypadOrder)+2)
	for _, digit := range keypadOrder {
		p, _ := placement.FromKeypadDigit(digit)
		items = append(items, Item{
			Label:    fmt.Sprintf("%d  %s", digit, strings.TrimPrefix(p.Title(), "Move Window to the ")),
			Action:   actionPrefix + p.String(),
			Icon:     icons[p],
			Meta:     strings.ReplaceAll(p.String(), "-", " ") + " " + strconv.Itoa(digit),
			IsActive: p.String() == last,
		})
	}
	items = append(items,
		Item{Label: "────────", IsDivider: true},
		Item{Label: "Undo last move", Action: actionUndo, Icon: "edit-undo", Meta: "undo revert restore"},
	)
	return items
}

// ChoosePlacement shows the placement palette on b.
func ChoosePlacement(b Backend, last string) (Choice, error) {
	items := PlacementItems(last)
	for {
		item, err := b.Show("Move window", items, "Pick a position on the current monitor")
		if err != nil {
			return Choice{}, err
		}
		// Not every backend can make rows non-selectable.
		if item.IsDivider {
			continue
		}
		return choiceFor(item)
	}
}

func choiceFor(item Item) (Choice, error) {
	if item.Action == actionUndo {
		return Choice{Undo: true}, nil
	}
	name, ok := strings.CutPrefix(item.Action, actionPrefix)
	if !ok {
		return Choice{}, fmt.Errorf("palette: unexpected action %q", item.Action)
	}
	p, err := placement.Parse(name)
	if err != nil {
		return Choice{}, fmt.Errorf("palette: %w", err)
	}
	return Choice{Placement: p}, nil
}
