package domain

// Locale selects the label table used for display.
type Locale string

const (
	LocaleRU Locale = "ru" // Default, as shipped
	LocaleEN Locale = "en"
)

// Metadata is the fixed display data of a tag.
// It is a pure function of the tag and never stored per cell.
type Metadata struct {
	Tag         Tag    `json:"tag" yaml:"tag"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Glyph       string `json:"glyph" yaml:"glyph"`
	Color       string `json:"color" yaml:"color"`
}

type visual struct {
	icon  string
	glyph string
	color string
}

var visuals = map[Tag]visual{
	Alive: {icon: "ic_alive", glyph: "◉", color: "#FFF176"},
	Dead:  {icon: "ic_dead", glyph: "✕", color: "#A5D6A7"},
	Life:  {icon: "ic_life", glyph: "✦", color: "#BA68C8"},
}

type text struct {
	label       string
	description string
}

var labels = map[Locale]map[Tag]text{
	LocaleRU: {
		Alive: {label: "Живая", description: "и шевелится!"},
		Dead:  {label: "Мёртвая", description: "или прикидывается"},
		Life:  {label: "Жизнь", description: "Ку-ку!"},
	},
	LocaleEN: {
		Alive: {label: "Alive", description: "and wriggling!"},
		Dead:  {label: "Dead", description: "or pretending"},
		Life:  {label: "Life", description: "Cuckoo!"},
	},
}

// ParseLocale returns the locale for s, falling back to LocaleRU.
func ParseLocale(s string) Locale {
	if _, ok := labels[Locale(s)]; ok {
		return Locale(s)
	}
	return LocaleRU
}

// Info returns the display metadata of t in the default locale.
func Info(t Tag) Metadata {
	return InfoIn(t, LocaleRU)
}

// InfoIn returns the display metadata of t in the given locale.
// Unknown locales fall back to LocaleRU. Invalid tags yield a zero Metadata
// carrying only the tag.
func InfoIn(t Tag, locale Locale) Metadata {
	v, ok := visuals[t]
	if !ok {
		return Metadata{Tag: t}
	}
	table, ok := labels[locale]
	if !ok {
		table = labels[LocaleRU]
	}
	txt := table[t]
	return Metadata{
		Tag:         t,
		Label:       txt.label,
		Description: txt.description,
		Icon:        v.icon,
		Glyph:       v.glyph,
		Color:       v.color,
	}
}

// Catalog returns the metadata of every tag in display order.
func Catalog(locale Locale) []Metadata {
	out := make([]Metadata, 0, len(Tags))
	for _, t := range Tags {
		out = append(out, InfoIn(t, locale))
	}
	return out
}
