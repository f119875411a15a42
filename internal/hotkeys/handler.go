package hotkeys

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/1broseidon/winplace/internal/config"
	"github.com/1broseidon/winplace/internal/mover"
	"github.com/1broseidon/winplace/internal/placement"
	"github.com/1broseidon/winplace/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Mover is the window mover triggered by hotkeys.
type Mover interface {
	Move(p placement.Placement) (mover.Result, error)
	Undo() (platform.Rect, error)
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu    *xgbutil.XUtil
	root  xproto.Window
	mover Mover
}

// Binding is one global shortcut and the action it triggers.
type Binding struct {
	Keys   string
	Title  string
	Action func()
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend, mv Mover) *Handler {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}

	if xu != nil {
		ignoreModsOnce.Do(func() {
			configureIgnoreMods(xu)
		})
	}

	return &Handler{
		xu:    xu,
		root:  root,
		mover: mv,
	}
}

// Bindings returns the shortcuts described by cfg: one per bound placement
// in placement order, then undo. Unbound entries are skipped.
func (h *Handler) Bindings(cfg *config.Config) []Binding {
	var out []Binding
	for _, p := range placement.All() {
		keys := cfg.Binding(p)
		if keys == "" {
			continue
		}
		out = append(out, Binding{
			Keys:   keys,
			Title:  p.Title(),
			Action: func() { h.move(p) },
		})
	}
	if cfg.UndoHotkey != "" {
		out = append(out, Binding{
			Keys:   cfg.UndoHotkey,
			Title:  "Undo Window Move",
			Action: h.undo,
		})
	}
	return out
}

// RegisterAll grabs every shortcut from cfg. Registration continues past
// failures; the returned error joins all of them.
func (h *Handler) RegisterAll(cfg *config.Config) error {
	var errs []error
	for _, b := range h.Bindings(cfg) {
		if err := h.RegisterFunc(b.Keys, b.Action); err != nil {
			errs = append(errs, fmt.Errorf("%s (%s): %w", b.Title, b.Keys, err))
			continue
		}
		log.Printf("Registered hotkey %s: %s", b.Keys, b.Title)
	}
	return errors.Join(errs...)
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	if h.xu == nil {
		return fmt.Errorf("hotkeys require an X11 backend")
	}
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func (h *Handler) move(p placement.Placement) {
	log.Printf("Hotkey: %s", p.Title())
	if _, err := h.mover.Move(p); err != nil {
		log.Printf("Move to %s failed: %v", p, err)
	}
}

func (h *Handler) undo() {
	if _, err := h.mover.Undo(); err != nil {
		if errors.Is(err, mover.ErrNothingToUndo) {
			log.Println("Hotkey: nothing to undo")
			return
		}
		log.Printf("Undo failed: %v", err)
	}
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	xevent.IgnoreMods = ignoreMasks(caps, numLock, scrollLock)
}

// ignoreMasks returns every combination of the given lock masks, including
// the empty one. Zero and repeated masks are skipped.
func ignoreMasks(locks ...uint16) []uint16 {
	var base []uint16
	for _, m := range locks {
		if m == 0 || containsMask(base, m) {
			continue
		}
		base = append(base, m)
	}

	out := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		out = append(out, mask)
	}
	return out
}

func containsMask(masks []uint16, m uint16) bool {
	for _, v := range masks {
		if v == m {
			return true
		}
	}
	return false
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
