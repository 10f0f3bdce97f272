package virtualinput

import (
	"fmt"
	"time"

	"github.com/micmonay/keybd_event"

	"github.com/synrais/padkeys/pkg/keys"
)

var keybdKeys = keymap[int]{
	wasd: map[keys.VirtualKey]int{
		keys.Up:      keybd_event.VK_W,
		keys.Down:    keybd_event.VK_S,
		keys.Left:    keybd_event.VK_A,
		keys.Right:   keybd_event.VK_D,
		keys.Confirm: keybd_event.VK_ENTER,
	},
	arrows: map[keys.VirtualKey]int{
		keys.Up:      keybd_event.VK_UP,
		keys.Down:    keybd_event.VK_DOWN,
		keys.Left:    keybd_event.VK_LEFT,
		keys.Right:   keybd_event.VK_RIGHT,
		keys.Confirm: keybd_event.VK_ENTER,
	},
}

func init() {
	register("keybd", NewKeyBonding)
}

type keyBonding interface {
	SetKeys(keys ...int)
	Press() error
	Release() error
}

// KeyBonding drives the platform keyboard simulation API of keybd_event.
type KeyBonding struct {
	kb     keyBonding
	layout keys.Layout
}

// NewKeyBonding prepares keybd_event. On Linux the library registers its
// own uinput device, which needs the settle delay before the first key.
func NewKeyBonding(opts Options) (Injector, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("failed to initialise keyboard simulation: %w", err)
	}
	if opts.Settle > 0 {
		time.Sleep(opts.Settle)
	}
	return &KeyBonding{kb: &kb, layout: opts.Layout}, nil
}

func (k *KeyBonding) Close() error { return nil }

func (k *KeyBonding) Press(key keys.VirtualKey) error {
	return k.toggle("press", key, k.kb.Press)
}

func (k *KeyBonding) Release(key keys.VirtualKey) error {
	return k.toggle("release", key, k.kb.Release)
}

func (k *KeyBonding) toggle(op string, key keys.VirtualKey, do func() error) error {
	code, err := keybdKeys.lookup(k.layout, key)
	if err == nil {
		k.kb.SetKeys(code)
		err = do()
	}
	if err != nil {
		return &InjectionError{Backend: "keybd", Op: op, Key: key, Err: err}
	}
	return nil
}
