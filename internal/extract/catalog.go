package extract

import "regexp"

// Definition describes one catalog entry: an event category, its display
// name, an ordered pattern list (most specific first), the keyword set
// used by keyword-level detection, and the base confidence assigned to
// matches before match-quality adjustment.
type Definition struct {
	Type           string
	Name           string
	Patterns       []*regexp.Regexp
	Keywords       []string
	BaseConfidence float64
}

// Shared sub-expressions. SoF documents mix "1712 HRS 16.02.2024" block
// notation with "at 08:15 on 31/08/2025" prose notation, so most entries
// carry one pattern per notation.
const (
	reDate  = `(\d{1,2}[./-]\d{1,2}[./-]\d{4})`
	reClock = `(\d{1,2}:\d{2})`
	reHHMM  = `(\d{4})`
)

// catalog is the immutable event-definition table. It is compiled once at
// package init and shared read-only across all extraction calls.
var catalog = []Definition{
	// Arrival
	{
		Type: "arrival",
		Name: "Vessel Arrived at Port",
		Patterns: compile(
			`(?i)vessel\s+arrived\s+(?:at\s+)?([A-Za-z\s]+?)(?:\s+port\s+limits?)?\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)vessel\s+arrived\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)arrived\s+(?:at\s+)?([A-Za-z\s]+?)(?:\s+port\s+limits?)?\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)arrived\s+(?:at\s+)?(?:port\s+)?(?:at\s+)?`+reClock+`(?:\s+on\s+)?`+reDate,
			`(?i)arrived\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
		),
		Keywords:       []string{"arrived", "arrival", "reached", "entered port"},
		BaseConfidence: 0.95,
	},
	{
		Type: "arrival",
		Name: "Vessel Dropped Anchor",
		Patterns: compile(
			`(?i)(?:vessel\s+)?dropped\s+anchor\s*[:=]?\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)(?:vessel\s+)?dropped\s+anchor\s+(?:at\s+)?`+reClock+`(?:\s+on\s+)?`+reDate,
			`(?i)anchored\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
		),
		Keywords:       []string{"dropped anchor", "anchored", "anchor dropped"},
		BaseConfidence: 0.95,
	},
	{
		Type: "arrival",
		Name: "Vessel at Anchorage",
		Patterns: compile(
			`(?i)vessel\s+(?:at\s+)?anchorage\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)at\s+anchorage\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
		),
		Keywords:       []string{"at anchorage", "anchorage", "anchored"},
		BaseConfidence: 0.90,
	},

	// Pilot
	{
		Type: "pilot",
		Name: "Pilot Boarded",
		Patterns: compile(
			`(?i)pilot\s+(?:boarded|embarked)(?:\s+the\s+vessel)?(?:\s+for\s+berthing)?\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)pilot\s+(?:boarded|embarked)[a-z\s]*?`+reClock+`(?:\s+on\s+)?`+reDate,
			`(?i)pilot\s+(?:boarded|embarked)`,
		),
		Keywords:       []string{"pilot boarded", "pilot embarked", "pilot on board"},
		BaseConfidence: 0.95,
	},
	{
		Type: "pilot",
		Name: "Pilot Disembarked",
		Patterns: compile(
			`(?i)pilot\s+disembarked\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)pilot\s+disembarked\s+(?:at\s+)?`+reClock+`(?:\s+on\s+)?`+reDate,
			`(?i)pilot\s+disembarked`,
		),
		Keywords:       []string{"pilot disembarked", "pilot left", "pilot off"},
		BaseConfidence: 0.95,
	},

	// Berthing
	{
		Type: "berthing",
		Name: "First Line Ashore",
		Patterns: compile(
			`(?i)first\s+line\s+ashore\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)first\s+line\s+ashore\s+(?:berth\s+no\s+)?([A-Z0-9-]+)\s+(?:at\s+)?`+reClock+`(?:\s+on\s+)?`+reDate,
		),
		Keywords:       []string{"first line ashore", "first line", "line ashore"},
		BaseConfidence: 0.95,
	},
	{
		Type: "berthing",
		Name: "All Fast Alongside",
		Patterns: compile(
			`(?i)all\s+fast(?:\s+at\s+berth\s*-?[A-Z0-9]+)?\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)all\s+fast\s+(?:at\s+)?`+reClock+`(?:\s+on\s+)?`+reDate,
			`(?i)all\s+fast`,
		),
		Keywords:       []string{"all fast", "fast alongside", "securely moored"},
		BaseConfidence: 0.95,
	},
	{
		Type: "berthing",
		Name: "Vessel Berthed",
		Patterns: compile(
			`(?i)vessel\s+berthed\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)berthed\s+(?:at\s+)?([A-Za-z\s]+?)(?:\s+terminal)?\s+(?:at\s+)?`+reClock+`(?:\s+on\s+)?`+reDate,
		),
		Keywords:       []string{"berthed", "berthing", "moored", "alongside"},
		BaseConfidence: 0.90,
	},

	// Cargo operations
	{
		Type: "cargo",
		Name: "Loading Commenced",
		Patterns: compile(
			`(?i)loading\s+commenced(?:\s+on\s+)?\s*`+reDate+`(?:\s+at\s+)?\s*`+reClock,
			`(?i)loading\s+commenced(?:\s+at\s+)?\s*`+reClock+`(?:\s+on\s+)?\s*`+reDate,
			`(?i)loading\s+commenced\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)loading\s+commenced`,
		),
		Keywords:       []string{"loading commenced", "loading started", "cargo loading"},
		BaseConfidence: 0.95,
	},
	{
		Type: "cargo",
		Name: "Loading Completed",
		Patterns: compile(
			`(?i)loading\s+completed(?:\s+on\s+)?\s*`+reDate+`(?:\s+at\s+)?\s*`+reClock,
			`(?i)loading\s+completed(?:\s+at\s+)?\s*`+reClock+`(?:\s+on\s+)?\s*`+reDate,
			`(?i)loading\s+completed\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)loading\s+completed`,
		),
		Keywords:       []string{"loading completed", "loading finished", "cargo loaded"},
		BaseConfidence: 0.95,
	},
	{
		Type: "cargo",
		Name: "Discharging Commenced",
		Patterns: compile(
			`(?i)commenced\s+discharging\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)discharging\s+commenced(?:\s+at\s+)?\s*`+reClock+`(?:\s+on\s+)?\s*`+reDate,
			`(?i)discharging\s+commenced`,
		),
		Keywords:       []string{"discharging commenced", "discharge started", "unloading"},
		BaseConfidence: 0.95,
	},
	{
		Type: "cargo",
		Name: "Discharging Completed",
		Patterns: compile(
			`(?i)discharging\s+completed\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)discharging\s+completed(?:\s+at\s+)?\s*`+reClock+`(?:\s+on\s+)?\s*`+reDate,
			`(?i)discharging\s+completed`,
		),
		Keywords:       []string{"discharging completed", "discharge finished", "unloading complete"},
		BaseConfidence: 0.95,
	},

	// Departure
	{
		Type: "departure",
		Name: "Vessel Departed",
		Patterns: compile(
			`(?i)(?:vessel\s+)?departed(?:\s+from)?\s+([A-Za-z\s]+?)(?:\s+on\s+)?\s*`+reDate+`(?:\s+at\s+)?\s*`+reClock,
			`(?i)(?:vessel\s+)?departed(?:\s+at\s+)?\s*`+reClock+`(?:\s+on\s+)?\s*`+reDate,
			`(?i)(?:vessel\s+)?departed\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)vessel\s+departed`,
		),
		Keywords:       []string{"departed", "sailed", "left port", "cast off"},
		BaseConfidence: 0.95,
	},
	{
		Type: "departure",
		Name: "Vessel Sailed",
		Patterns: compile(
			`(?i)vessel\s+sailed\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)sailed\s+(?:at\s+)?`+reClock+`(?:\s+on\s+)?`+reDate,
		),
		Keywords:       []string{"sailed", "sailing", "departed"},
		BaseConfidence: 0.90,
	},

	// Customs
	{
		Type: "customs",
		Name: "Customs Boarding",
		Patterns: compile(
			`(?i)customs\s+boarding\s+formalities\s+commenced\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)customs\s+onboard\s+(?:at\s+)?`+reClock+`(?:\s+on\s+)?`+reDate,
			`(?i)customs\s+boarding`,
		),
		Keywords:       []string{"customs boarding", "customs onboard", "customs formalities"},
		BaseConfidence: 0.90,
	},

	// Weather
	{
		Type: "weather",
		Name: "Weather Delay",
		Patterns: compile(
			`(?i)(?:heavy\s+)?(?:rain|storm|fog|wind)\s+caused\s+delay`,
			`(?i)weather\s+delay`,
			`(?i)operations?\s+suspended\s+due\s+to\s+weather`,
			`(?i)rain\s+stopped\s+work`,
		),
		Keywords:       []string{"weather delay", "rain delay", "storm delay", "fog delay"},
		BaseConfidence: 0.90,
	},

	// Notice of Readiness
	{
		Type: "nor",
		Name: "NOR Tendered",
		Patterns: compile(
			`(?i)nor\s+tendered\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)notice\s+of\s+readiness\s+tendered\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
		),
		Keywords:       []string{"nor tendered", "notice of readiness", "nor"},
		BaseConfidence: 0.95,
	},
	{
		Type: "nor",
		Name: "NOR Accepted",
		Patterns: compile(
			`(?i)nor\s+accepted\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)notice\s+of\s+readiness\s+accepted\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
		),
		Keywords:       []string{"nor accepted", "nor accepted by", "readiness accepted"},
		BaseConfidence: 0.95,
	},

	// Free pratique
	{
		Type: "pratique",
		Name: "Free Pratique Granted",
		Patterns: compile(
			`(?i)free\s+pratique\s+granted\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
			`(?i)pratique\s+granted\s*[:=]\s*`+reHHMM+`\s*hrs?\s*`+reDate,
		),
		Keywords:       []string{"free pratique", "pratique granted", "pratique"},
		BaseConfidence: 0.95,
	},
}

// Catalog returns the shared event-definition table.
func Catalog() []Definition {
	return catalog
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}
