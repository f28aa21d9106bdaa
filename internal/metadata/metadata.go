// Package metadata persists the full pipeline input — keyframes, clicks,
// zoom sections and configuration — as one versioned JSON document written
// next to the output video. Loading the document back reproduces an
// equivalent pipeline input.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ivlev/screen2video/internal/config"
	"github.com/ivlev/screen2video/internal/keyframe"
	"github.com/ivlev/screen2video/internal/zoom"
)

// Version is the current document schema version.
const Version = "1.0"

// Document is the on-disk metadata snapshot.
type Document struct {
	Version   string       `json:"version"`
	Video     VideoInfo    `json:"video"`
	Cursor    CursorBlock  `json:"cursor"`
	Zoom      ZoomBlock    `json:"zoom"`
	Clicks    []keyframe.ClickEvent     `json:"clicks"`
	Effects   config.MouseEffectsConfig `json:"effects"`
	CreatedAt time.Time    `json:"createdAt"`
}

// VideoInfo describes the processed video.
type VideoInfo struct {
	Path       string `json:"path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	FPS        int    `json:"fps"`
	DurationMs int64  `json:"durationMs"`
}

// CursorBlock pairs the keyframe track with its configuration.
type CursorBlock struct {
	Keyframes []keyframe.CursorKeyframe `json:"keyframes"`
	Config    config.CursorConfig       `json:"config"`
}

// ZoomBlock pairs the computed zoom sections with their configuration.
type ZoomBlock struct {
	Sections []zoom.Region     `json:"sections"`
	Config   config.ZoomConfig `json:"config"`
}

// New assembles a document from one run's inputs.
func New(video VideoInfo, keyframes []keyframe.CursorKeyframe, clicks []keyframe.ClickEvent,
	sections []zoom.Region, cursorCfg config.CursorConfig, zoomCfg config.ZoomConfig,
	effectsCfg config.MouseEffectsConfig) *Document {

	return &Document{
		Version:   Version,
		Video:     video,
		Cursor:    CursorBlock{Keyframes: keyframes, Config: cursorCfg},
		Zoom:      ZoomBlock{Sections: sections, Config: zoomCfg},
		Clicks:    clicks,
		Effects:   effectsCfg,
		CreatedAt: time.Now().UTC(),
	}
}

// Write stores the document as indented JSON.
func Write(doc *Document, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Read loads a document, rejecting unknown schema versions.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata %s: %w", path, err)
	}

	if doc.Version != Version {
		return nil, fmt.Errorf("unsupported metadata version %q (expected %q)", doc.Version, Version)
	}

	return &doc, nil
}
