package prompts

import (
	"context"
	"embed"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/weatherstyle/internal/domain/styling"
)

//go:embed defaults/*.txt
var defaultFS embed.FS

// ObjectReader reads objects from storage.
type ObjectReader interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Keys names the template objects in storage.
type Keys struct {
	System string
	User   string
	Image  string
}

// Loader reads prompt templates from object storage. Templates not stored
// remotely fall back to the embedded defaults.
type Loader struct {
	reader ObjectReader
	keys   Keys
	logger *slog.Logger
}

// NewLoader constructs a loader. A nil reader serves the embedded defaults.
func NewLoader(reader ObjectReader, keys Keys, logger *slog.Logger) *Loader {
	return &Loader{reader: reader, keys: keys, logger: logger.With("component", "prompts.loader")}
}

// Templates loads the system, user and image templates. With storage
// configured, failing to read the system or user template is an error; the
// image template is optional and falls back to its default.
func (l *Loader) Templates(ctx context.Context) (styling.Templates, error) {
	defaults, err := Defaults()
	if err != nil {
		return styling.Templates{}, err
	}
	if l.reader == nil {
		return defaults, nil
	}

	out := defaults
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := l.read(gctx, l.keys.System)
		if err != nil {
			return err
		}
		out.System = text
		return nil
	})
	g.Go(func() error {
		text, err := l.read(gctx, l.keys.User)
		if err != nil {
			return err
		}
		out.User = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return styling.Templates{}, err
	}

	if l.keys.Image != "" {
		if text, err := l.read(ctx, l.keys.Image); err == nil {
			out.Image = text
		} else {
			l.logger.Debug("image prompt not in storage, using default", "key", l.keys.Image, "error", err)
		}
	}
	return out, nil
}

func (l *Loader) read(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("prompt key is empty")
	}
	rc, err := l.reader.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("load prompt %s: %w", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read prompt %s: %w", key, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("prompt %s is empty", key)
	}
	return string(data), nil
}

// Defaults returns the embedded templates.
func Defaults() (styling.Templates, error) {
	system, err := defaultFS.ReadFile("defaults/system.txt")
	if err != nil {
		return styling.Templates{}, err
	}
	user, err := defaultFS.ReadFile("defaults/user.txt")
	if err != nil {
		return styling.Templates{}, err
	}
	image, err := defaultFS.ReadFile("defaults/image.txt")
	if err != nil {
		return styling.Templates{}, err
	}
	return styling.Templates{System: string(system), User: string(user), Image: string(image)}, nil
}

var _ styling.PromptSource = (*Loader)(nil)
