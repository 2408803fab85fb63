// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// HairColor is a preset color filter offered on the hairstyles tab.
type HairColor struct {
	Name string
	Hex  string
}

// HairColorPresets are the selectable hair color filters, in display order.
var HairColorPresets = []HairColor{
	{Name: "Black", Hex: "#000000"},
	{Name: "Dark Brown", Hex: "#3E2723"},
	{Name: "Brown", Hex: "#795548"},
	{Name: "Blonde", Hex: "#FFD54F"},
	{Name: "Red", Hex: "#D32F2F"},
	{Name: "Auburn", Hex: "#A52A2A"},
	{Name: "Silver", Hex: "#C0C0C0"},
	{Name: "White", Hex: "#FFFFFF"},
}

// DescriptionWithColor qualifies a style description with its selected
// color so the image model reproduces it. Hex values are spelled out as
// exact codes; preset names are passed through verbatim. Hair and fashion
// use different phrasing (hair color vs main fabric color).
func DescriptionWithColor(item StyleItem, kind ResultKind) string {
	if item.SelectedColor == "" {
		return item.Description
	}

	colorTerm := item.SelectedColor
	if strings.HasPrefix(item.SelectedColor, "#") {
		colorTerm = "exactly hex code " + item.SelectedColor
	}

	if kind == KindHair {
		return item.Description + ". The hair color should be " + colorTerm + "."
	}
	return item.Description + ". The main fabric color should be " + colorTerm + "."
}

// ShoppingQuery builds the web search query for an outfit: optional color,
// name, then description.
func ShoppingQuery(item StyleItem) string {
	if item.SelectedColor != "" {
		return item.SelectedColor + " " + item.Name + " " + item.Description
	}
	return item.Name + " " + item.Description
}
