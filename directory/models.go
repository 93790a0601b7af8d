package directory

// Experience is the competitive tier of a directory entry.
type Experience string

const (
	ExperienceAmateur Experience = "Amateur"
	ExperienceSemiPro Experience = "Semi-Pro"
	ExperiencePro     Experience = "Pro"
)

// Player is a read-only directory entry describing one candidate.
// Records are seeded or imported; nothing in the search path mutates them.
type Player struct {
	ID                string
	Name              string
	Role              string
	Strengths         []string
	LastThirtyDayForm string
	Summary           string
	Game              string
	Region            string
	Experience        Experience
	Availability      bool
	ClutchPercentage  *int
	EntryStyle        string
	UtilityUsage      string
}

// Filters narrows a search. Zero values leave their dimension unfiltered;
// Availability distinguishes "unset" from "false" via the pointer.
type Filters struct {
	Game         string
	Region       string
	Experience   Experience
	Availability *bool
}
