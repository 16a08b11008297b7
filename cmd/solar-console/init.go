package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/b/solar-console/pkg/config"
	"github.com/b/solar-console/pkg/entries"
)

var exampleApps = []string{"Steam", "RetroArch", "Kodi", "Jellyfin", "Spotify"}

func exampleGroups() []config.Group {
	return []config.Group{
		{Name: "Games", Pattern: "(?i)steam|retroarch|lutris", Theme: config.GroupTheme{Bg: "#8e44ad", Icon: "🎮"}},
		{Name: "Video", Pattern: "(?i)kodi|jellyfin|plex|vlc|mpv", Theme: config.GroupTheme{Bg: "#e67e22", Icon: "🎬"}},
		{Name: "Music", Pattern: "(?i)spotify|music", Theme: config.GroupTheme{Bg: "#27ae60", Icon: "🎵"}},
		{Name: "Default", Theme: config.GroupTheme{Bg: "#34495e"}},
	}
}

func newInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config and an example app list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := writeStarterFiles(*opts, force)
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config")
	return cmd
}

// writeStarterFiles writes the config and, if missing, the app list it
// points at. An existing app list is never overwritten.
func writeStarterFiles(opts options, force bool) ([]string, error) {
	path := opts.path()
	if _, err := os.Stat(path); err == nil && !force {
		return nil, fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	cfg := config.Default()
	cfg.Groups = exampleGroups()
	if opts.entriesPath != "" {
		cfg.EntriesFile = opts.entriesPath
	}
	if err := config.SaveConfig(path, cfg); err != nil {
		return nil, err
	}
	written := []string{path}

	list := cfg.EntriesPath()
	if _, err := os.Stat(list); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(list), 0755); err != nil {
			return written, err
		}
		if err := entries.Write(list, exampleApps); err != nil {
			return written, err
		}
		written = append(written, list)
	}
	return written, nil
}
