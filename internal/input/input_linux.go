//go:build linux

package input

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

type linuxTyper struct {
	useWayland bool
}

func newTyper() (Typer, error) {
	t := &linuxTyper{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}
	return t, nil
}

// Type вводит текст через xdotool (X11) или wtype (Wayland).
func (t *linuxTyper) Type(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), typeTimeout)
	defer cancel()

	if t.useWayland {
		return t.typeWayland(ctx, text)
	}
	return t.typeX11(ctx, text)
}

func (t *linuxTyper) typeX11(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, "xdotool", "type", "--clearmodifiers", "--", text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xdotool: %w", err)
	}
	return nil
}

func (t *linuxTyper) typeWayland(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, "wtype", text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wtype: %w", err)
	}
	return nil
}
