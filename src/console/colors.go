package console

// Color is one entry of the console palette.
type Color struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

var (
	Primary   = Color{Name: "primary", Code: "#6c5dd3"}
	Secondary = Color{Name: "secondary", Code: "#ffa2c0"}
	Success   = Color{Name: "success", Code: "#46bcaa"}
	Info      = Color{Name: "info", Code: "#4d69fa"}
	Warning   = Color{Name: "warning", Code: "#ffcf52"}
	Danger    = Color{Name: "danger", Code: "#f35421"}
	Dark      = Color{Name: "dark", Code: "#1f2128"}
	Light     = Color{Name: "light", Code: "#e7eef8"}
)

// Palette lists the colours in their fixed order.
func Palette() []Color {
	return []Color{Primary, Secondary, Success, Info, Warning, Danger, Dark, Light}
}

// ColorAt cycles through the palette without the last entry, for charts and badges.
func ColorAt(index int) Color {
	p := Palette()
	n := len(p) - 1
	if index < 0 {
		index = -index
	}
	return p[index%n]
}
