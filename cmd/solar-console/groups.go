package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/b/solar-console/pkg/colors"
	"github.com/b/solar-console/pkg/config"
	"github.com/b/solar-console/pkg/entries"
	"github.com/b/solar-console/pkg/grouping"
)

func newGroupsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List and edit entry groups",
	}

	var pattern, bg, icon string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := addGroup(opts.path(), args[0], pattern, bg, icon); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added group: %s\n", args[0])
			return nil
		},
	}
	add.Flags().StringVarP(&pattern, "pattern", "p", "", "regular expression matched against entry names")
	add.Flags().StringVar(&bg, "color", "", "tile background, #rrggbb")
	add.Flags().StringVar(&icon, "icon", "", "glyph shown on the group's tiles")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a group",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := deleteGroup(opts.path(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted group: %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <old-name> <new-name>",
			Short: "Rename a group",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := renameGroup(opts.path(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed group: %s -> %s\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-color <name> <color>",
			Short: "Set a group's tile color",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := setGroupColor(opts.path(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set color for group %s: %s\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-icon <name> <glyph>",
			Short: "Set a group's icon glyph",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := setGroupIcon(opts.path(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set icon for group %s: %s\n", args[0], args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List groups and the entries they match",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(*opts)
				if err != nil {
					return err
				}
				members := map[string][]string{}
				if names, err := entries.Load(cfg.EntriesPath()); err == nil {
					resolver, _ := grouping.NewResolver(cfg.Groups, true)
					for _, g := range resolver.GroupEntries(names) {
						members[g.Name] = g.Entries
					}
				}
				out := cmd.OutOrStdout()
				for _, g := range cfg.Groups {
					fmt.Fprintf(out, "%s%s\t%q\t%d entries %v\n", iconPrefix(g.Theme.Icon), g.Name, g.Pattern, len(members[g.Name]), members[g.Name])
				}
				return nil
			},
		},
	)
	return cmd
}

// editGroups loads the config at path, applies fn and saves it. A missing
// config starts from the defaults.
func editGroups(path string, fn func(cfg *config.Config) error) error {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	if err := fn(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return config.SaveConfig(path, cfg)
}

func addGroup(path, name, pattern, bg, icon string) error {
	if bg != "" && !colors.IsHex(bg) {
		return fmt.Errorf("color %q: want #rrggbb", bg)
	}
	return editGroups(path, func(cfg *config.Config) error {
		return config.AddGroup(cfg, config.Group{
			Name:    name,
			Pattern: pattern,
			Theme:   config.GroupTheme{Bg: bg, Icon: icon},
		})
	})
}

func deleteGroup(path, name string) error {
	return editGroups(path, func(cfg *config.Config) error {
		return config.DeleteGroup(cfg, name)
	})
}

func renameGroup(path, oldName, newName string) error {
	return editGroups(path, func(cfg *config.Config) error {
		group := config.FindGroup(cfg, oldName)
		if group == nil {
			return config.ErrGroupNotFound
		}
		if config.FindGroup(cfg, newName) != nil {
			return config.ErrGroupExists
		}
		renamed := *group
		renamed.Name = newName
		return config.UpdateGroup(cfg, oldName, renamed)
	})
}

func setGroupColor(path, name, bg string) error {
	if !colors.IsHex(bg) {
		return fmt.Errorf("color %q: want #rrggbb", bg)
	}
	return editGroups(path, func(cfg *config.Config) error {
		group := config.FindGroup(cfg, name)
		if group == nil {
			return config.ErrGroupNotFound
		}
		group.Theme.Bg = bg
		group.Theme.ActiveBg = colors.DeriveActiveBg(bg, true)
		return nil
	})
}

func setGroupIcon(path, name, icon string) error {
	return editGroups(path, func(cfg *config.Config) error {
		group := config.FindGroup(cfg, name)
		if group == nil {
			return config.ErrGroupNotFound
		}
		group.Theme.Icon = icon
		return nil
	})
}
