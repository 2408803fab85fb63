// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// AppendHairStyles appends more hairstyle suggestions. Suggestion lists
// only ever grow within a session.
func (a *AnalysisResult) AppendHairStyles(more []StyleItem) {
	a.HairStyles = append(a.HairStyles, more...)
}

// AppendOutfits appends more outfit suggestions.
func (a *AnalysisResult) AppendOutfits(more []StyleItem) {
	a.Outfits = append(a.Outfits, more...)
}

// SetColorByName assigns a color to every item matching name in both
// suggestion lists and clears their cached thumbnails: a recolored style's
// preview is stale and must be regenerated before reuse.
//
// Name is the de-facto identity key for in-session styles, so an
// equal-named item in the other list is updated too.
func (a *AnalysisResult) SetColorByName(name, color string) {
	setColor := func(list []StyleItem) {
		for i := range list {
			if list[i].Name == name {
				list[i].SelectedColor = color
				list[i].Thumbnail = ""
			}
		}
	}
	setColor(a.HairStyles)
	setColor(a.Outfits)
}

// SetThumbnailByName stores a generated preview image on every item
// matching name in both lists.
func (a *AnalysisResult) SetThumbnailByName(name, thumbnail string) {
	setThumb := func(list []StyleItem) {
		for i := range list {
			if list[i].Name == name {
				list[i].Thumbnail = thumbnail
			}
		}
	}
	setThumb(a.HairStyles)
	setThumb(a.Outfits)
}

// ApplyHairColorFilter applies a color to all hairstyle suggestions at
// once, or clears it when color is empty. The bulk filter does not touch
// thumbnails already generated in that color; per-item SetColorByName does.
func (a *AnalysisResult) ApplyHairColorFilter(color string) {
	for i := range a.HairStyles {
		a.HairStyles[i].SelectedColor = color
	}
}

// FindByName returns the first item matching name from either list, hair
// list first, or nil when absent.
func (a *AnalysisResult) FindByName(name string) *StyleItem {
	for i := range a.HairStyles {
		if a.HairStyles[i].Name == name {
			return &a.HairStyles[i]
		}
	}
	for i := range a.Outfits {
		if a.Outfits[i].Name == name {
			return &a.Outfits[i]
		}
	}
	return nil
}
