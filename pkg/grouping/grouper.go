// Package grouping assigns app entries to the configured groups and works
// out each entry's tile colors.
package grouping

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/b/solar-console/pkg/colors"
	"github.com/b/solar-console/pkg/config"
)

// DefaultGroup catches entries no other pattern matches, when configured.
const DefaultGroup = "Default"

// Style is how one entry's tile is painted.
type Style struct {
	Group string
	Icon  string
	colors.TileColors
}

// Grouped is one group and the entries that landed in it, in list order.
type Grouped struct {
	Name    string
	Theme   config.GroupTheme
	Entries []string
}

type compiled struct {
	group config.Group
	re    *regexp.Regexp
}

// Resolver matches entry names against group patterns. Patterns are
// compiled once.
type Resolver struct {
	groups []compiled
	isDark bool
}

// NewResolver compiles the group patterns. Groups with an invalid pattern
// are skipped and reported in the returned error; the resolver is usable
// either way. An empty pattern only matches through the Default fallback.
func NewResolver(groups []config.Group, isDarkTerminalBg bool) (*Resolver, error) {
	r := &Resolver{isDark: isDarkTerminalBg}
	var errs []error
	for _, g := range groups {
		c := compiled{group: g}
		if g.Pattern != "" {
			re, err := regexp.Compile(g.Pattern)
			if err != nil {
				errs = append(errs, fmt.Errorf("group %q: %w", g.Name, err))
				continue
			}
			c.re = re
		}
		r.groups = append(r.groups, c)
	}
	return r, errors.Join(errs...)
}

// Match returns the group an entry belongs to. Placeholders never match.
func (r *Resolver) Match(name string) (config.Group, bool) {
	if name == "" {
		return config.Group{}, false
	}
	for _, c := range r.groups {
		if c.re != nil && c.group.Name != DefaultGroup && c.re.MatchString(name) {
			return c.group, true
		}
	}
	for _, c := range r.groups {
		if c.group.Name == DefaultGroup {
			return c.group, true
		}
	}
	return config.Group{}, false
}

// GroupEntries sorts names into groups. Empty groups are left out; entries
// with no group are dropped.
func (r *Resolver) GroupEntries(names []string) []Grouped {
	byName := make(map[string]*Grouped)
	var order []*Grouped
	for _, c := range r.groups {
		if _, ok := byName[c.group.Name]; ok {
			continue
		}
		g := &Grouped{Name: c.group.Name, Theme: c.group.Theme}
		byName[c.group.Name] = g
		order = append(order, g)
	}

	for _, name := range names {
		if group, ok := r.Match(name); ok {
			byName[group.Name].Entries = append(byName[group.Name].Entries, name)
		}
	}

	var nonEmpty []Grouped
	for _, g := range order {
		if len(g.Entries) > 0 {
			nonEmpty = append(nonEmpty, *g)
		}
	}
	return nonEmpty
}

// Styles returns the tile style of every grouped entry. Members after the
// first are shaded so neighbours in the same group stay distinguishable.
// Entries without a group are absent from the map.
func (r *Resolver) Styles(names []string) map[string]Style {
	styles := make(map[string]Style)
	for i, g := range r.GroupEntries(names) {
		base := g.Theme.Bg
		if base == "" {
			base = colors.GetDefaultGroupColor(i)
		}
		for n, name := range g.Entries {
			tc := colors.TileColors{
				Bg:       colors.Shade(base, n),
				Fg:       g.Theme.Fg,
				ActiveBg: g.Theme.ActiveBg,
				ActiveFg: g.Theme.ActiveFg,
			}
			styles[name] = Style{
				Group:      g.Name,
				Icon:       g.Theme.Icon,
				TileColors: colors.DeriveTileColors(tc, r.isDark),
			}
		}
	}
	return styles
}
