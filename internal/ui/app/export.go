// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/util"
)

// exportLook writes a generated look's image to a JPEG file in the current
// directory and returns the filename.
func exportLook(item model.HistoryItem) (string, error) {
	data := item.Image
	if strings.HasPrefix(data, "data:") {
		idx := strings.Index(data, ",")
		if idx < 0 {
			return "", fmt.Errorf("malformed image data URI")
		}
		data = data[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	name := fmt.Sprintf("stylegenie-%s-%s.jpg",
		util.SlugifyName(item.StyleName),
		item.Timestamp.Format("20060102-150405"))
	if err := util.AtomicWriteFile(name, raw, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}
