// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the top-level Bubble Tea program for StyleGenie.
//
// This file defines keyboard bindings for every screen. Bindings support
// both arrow keys and vim-like shortcuts where they do not collide with
// screen-specific actions.
package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the app.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Submit     key.Binding
	Back       key.Binding
	Quit       key.Binding
	TabHair    key.Binding
	TabFashion key.Binding
	TabMix     key.Binding
	Search     key.Binding
	LinkMode   key.Binding
	LoadMore   key.Binding
	Preview    key.Binding
	Color      key.Binding
	Filter     key.Binding
	MixSelect  key.Binding
	MixClear   key.Binding
	MixGo      key.Binding
	Save       key.Binding
	Export     key.Binding
	Collection key.Binding
	Delete     key.Binding
	Salons     key.Binding
	Shopping   key.Binding
	Plans      key.Binding
	NewSession key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "previous result"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next result"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "try on"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
		TabHair: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "hairstyles"),
		),
		TabFashion: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "outfits"),
		),
		TabMix: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "mix & match"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search styles"),
		),
		LinkMode: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle link mode"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "load more"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		Color: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "pick color"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "color filter"),
		),
		MixSelect: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "add to mix"),
		),
		MixClear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear mix"),
		),
		MixGo: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate mix"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save look"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export image"),
		),
		Collection: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "collection"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Salons: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "nearby salons"),
		),
		Shopping: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "shop this look"),
		),
		Plans: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upgrade"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new photo"),
		),
	}
}
