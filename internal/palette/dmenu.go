package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type backendKind int

const (
	kindRofi backendKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

// dmenuLikeBackend drives any launcher that reads rows on stdin and prints
// the selection on stdout.
type dmenuLikeBackend struct {
	command string
	kind    backendKind

	// indexOutput backends print the selected row index instead of its text.
	indexOutput bool
	markup      bool
	icons       bool
}

func newRofiBackend() *dmenuLikeBackend {
	return &dmenuLikeBackend{command: "rofi", kind: kindRofi, indexOutput: true, markup: true, icons: true}
}

func newFuzzelBackend() *dmenuLikeBackend {
	return &dmenuLikeBackend{command: "fuzzel", kind: kindFuzzel, indexOutput: true, icons: true}
}

func newWofiBackend() *dmenuLikeBackend {
	return &dmenuLikeBackend{command: "wofi", kind: kindWofi, markup: true}
}

func newDmenuBackend() *dmenuLikeBackend {
	return &dmenuLikeBackend{command: "dmenu", kind: kindDmenu}
}

func (b *dmenuLikeBackend) Show(prompt string, items []Item, message string) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	rows := b.formatRows(items)
	cmd := exec.Command(b.command, b.buildArgs(prompt, message, items)...)
	cmd.Stdin = strings.NewReader(strings.Join(rows, "\n"))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", b.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", b.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}

	return b.parseSelection(selection, items)
}

func (b *dmenuLikeBackend) buildArgs(prompt string, message string, items []Item) []string {
	var args []string

	switch b.kind {
	case kindRofi:
		args = []string{"-dmenu", "-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		// Index output keeps parsing independent of markup in labels.
		args = append(args, "-format", "i", "-no-custom", "-markup-rows", "-show-icons")
		if row, ok := selectedRow(items); ok {
			args = append(args, "-selected-row", strconv.Itoa(row))
		}
		if active := activeRows(items); len(active) > 0 {
			args = append(args, "-a", joinInts(active))
		}
		if message != "" {
			args = append(args, "-mesg", message)
		}

	case kindFuzzel:
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}

	case kindWofi:
		args = []string{"--dmenu", "--allow-markup"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}

	case kindDmenu:
		args = []string{"-i", "-l", strconv.Itoa(len(items))}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}

	return args
}

func (b *dmenuLikeBackend) formatRows(items []Item) []string {
	rows := make([]string, len(items))
	for i, item := range items {
		rows[i] = b.formatItem(item)
	}
	return rows
}

func (b *dmenuLikeBackend) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if b.markup {
		display = html.EscapeString(display)
		if item.IsDivider {
			display = fmt.Sprintf("<span foreground='#666666'>%s</span>", display)
		}
	}

	// rofi row properties: one NUL, then key\x1fvalue pairs joined by \x1f.
	if b.kind != kindRofi {
		return display
	}

	var attrs []string
	if item.IsDivider {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" && b.icons {
		attrs = append(attrs, "icon", sanitizeRofiField(item.Icon))
	}
	if item.Meta != "" {
		attrs = append(attrs, "meta", sanitizeRofiField(item.Meta))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (b *dmenuLikeBackend) parseSelection(selection string, items []Item) (Item, error) {
	if b.indexOutput {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func selectedRow(items []Item) (int, bool) {
	first := -1
	for i, item := range items {
		if item.IsDivider {
			continue
		}
		if item.IsActive {
			return i, true
		}
		if first == -1 {
			first = i
		}
	}
	return first, first != -1
}

func activeRows(items []Item) []int {
	var out []int
	for i, item := range items {
		if item.IsActive && !item.IsDivider {
			out = append(out, i)
		}
	}
	return out
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	return strings.NewReplacer("\x00", " ", "\x1f", " ", "\r", " ", "\n", " ").Replace(strings.TrimSpace(value))
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	// 1 means "no selection", 130 is Ctrl+C.
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
