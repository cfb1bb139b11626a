package catalog

// Player style categories.
const (
	StyleClassic = "classic"
	StyleRetro   = "retro"
)

// DefaultStyleID is the style in effect before any change is recorded.
const DefaultStyleID = "retro_cd"

// PlayerStyle is a selectable now-playing look.
type PlayerStyle struct {
	ID          string
	Name        string
	Category    string
	Description string
}

var playerStyles = []PlayerStyle{
	{ID: "classic_vinyl", Name: "Classic Vinyl", Category: StyleClassic, Description: "Default layout with a spinning record"},
	{ID: "fullscreen_cover", Name: "Fullscreen Cover", Category: StyleClassic, Description: "Cover art fills the screen"},
	{ID: "album_cover", Name: "Album Sleeve", Category: StyleClassic, Description: "Record sleeve artwork"},
	{ID: "retro_pod", Name: "Millennium Pod", Category: StyleRetro, Description: "Click-wheel player from around 2000"},
	{ID: "retro_cd", Name: "Laser CD", Category: StyleRetro, Description: "Portable CD player"},
	{ID: "retro_light", Name: "Glow", Category: StyleRetro, Description: "Backlit LCD display"},
}

// PlayerStyles returns every selectable style.
func PlayerStyles() []PlayerStyle {
	out := make([]PlayerStyle, len(playerStyles))
	copy(out, playerStyles)
	return out
}

// FindPlayerStyle looks a style up by id.
func FindPlayerStyle(id string) (PlayerStyle, bool) {
	for _, s := range playerStyles {
		if s.ID == id {
			return s, true
		}
	}
	return PlayerStyle{}, false
}
