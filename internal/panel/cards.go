package panel

import (
	"strings"

	"folderpick/pkg/types"
)

// Badge labels a file card that has no preview
func Badge(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || ext == "." {
		ext = ".file"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return "[File" + ext + "]"
}

// Render turns a listing into cards: directories first, then files, each
// in the order the backend sent them.
func Render(l *types.Listing) []types.Card {
	if l == nil {
		return nil
	}
	cards := make([]types.Card, 0, len(l.Dirs)+len(l.Files))
	for _, d := range l.Dirs {
		cards = append(cards, types.Card{
			Type:        types.CardDir,
			Path:        d.Path,
			DisplayName: d.Name,
		})
	}
	for _, f := range l.Files {
		card := types.Card{
			Type:        types.CardFile,
			Path:        f.Path,
			DisplayName: f.Name,
			FileType:    f.Type,
			Ext:         f.Extension(),
		}
		switch f.Type {
		case types.FileImage:
			card.Thumb = types.ThumbScaled
		case types.FileSVG:
			card.Thumb = types.ThumbRaw
		default:
			card.Badge = Badge(f.Ext)
		}
		cards = append(cards, card)
	}
	return cards
}
