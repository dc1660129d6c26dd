package console

import (
	"encoding/json"
	"fmt"
)

// Icon is the closed set of icons the console renders. Unknown names cannot be
// expressed; a lookup by name only happens when decoding.
type Icon int

const (
	IconNone Icon = iota
	IconAllInclusive
	IconDashboard
	IconRouter
	IconBook
	IconAPI
	IconSwapHoriz
	IconError
	IconInfo
)

var iconNames = [...]string{
	IconNone:         "",
	IconAllInclusive: "AllInclusive",
	IconDashboard:    "Dashboard",
	IconRouter:       "Router",
	IconBook:         "Book",
	IconAPI:          "Api",
	IconSwapHoriz:    "SwapHoriz",
	IconError:        "Error",
	IconInfo:         "Info",
}

func (i Icon) String() string {
	if i < 0 || int(i) >= len(iconNames) {
		return ""
	}
	return iconNames[i]
}

func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Icon) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	icon, ok := IconByName(name)
	if !ok {
		return fmt.Errorf("unknown icon %q", name)
	}
	*i = icon
	return nil
}

// IconByName resolves a registered icon name.
func IconByName(name string) (Icon, bool) {
	for i, n := range iconNames {
		if n == name {
			return Icon(i), true
		}
	}
	return IconNone, false
}
