package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SceneArchive persists generated scenes and a session manifest under
// stories/<timestamp>_<title>_<short-id>/.
type SceneArchive struct {
	store Store
}

func NewSceneArchive(store Store) *SceneArchive {
	return &SceneArchive{store: store}
}

// StoryDir derives the directory for one session's output. Deterministic
// for a given (title, sessionID, start time).
func StoryDir(title, sessionID string, start time.Time) string {
	shortID := sessionID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return filepath.Join("stories",
		fmt.Sprintf("%s_%s_%s", start.Format("2006-01-02_1504"), sanitizeForFilename(title, 30), shortID))
}

// SaveScene writes one scene's text under the story directory.
func (a *SceneArchive) SaveScene(ctx context.Context, dir string, act, scene int, content string) error {
	name := fmt.Sprintf("act%02d_scene%02d.txt", act, scene)
	if err := a.store.Save(ctx, filepath.Join(dir, name), []byte(content)); err != nil {
		return fmt.Errorf("archiving %s: %w", name, err)
	}
	return nil
}

// SaveManifest writes the session manifest as indented JSON alongside the
// scenes.
func (a *SceneArchive) SaveManifest(ctx context.Context, dir string, manifest any) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := a.store.Save(ctx, filepath.Join(dir, "manifest.json"), data); err != nil {
		return fmt.Errorf("archiving manifest: %w", err)
	}
	return nil
}

// ListScenes returns the archived scene files for a story directory in
// lexical (structural) order.
func (a *SceneArchive) ListScenes(ctx context.Context, dir string) ([]string, error) {
	return a.store.List(ctx, filepath.Join(dir, "act*_scene*.txt"))
}

// sanitizeForFilename reduces free text to a safe directory name component.
func sanitizeForFilename(s string, maxLen int) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], "-")
	}
	if out == "" {
		return "story"
	}
	return out
}
