package directory

// SeedCatalog returns the default candidate catalog used until a real
// ingestion pipeline replaces it. Order is significant: search results
// preserve catalog order.
func SeedCatalog() []Player {
	return []Player{
		{
			ID:                "1",
			Name:              "ShadowStrike",
			Role:              "Entry Fragger",
			Strengths:         []string{"Aggressive positioning", "High first-kill rate", "Map control"},
			LastThirtyDayForm: "Excellent",
			Summary:           "Consistent entry fragger with exceptional aim and game sense. Strong team communication in CS:GO.",
			Game:              "CS:GO",
			Region:            "Europe",
			Experience:        ExperienceSemiPro,
			Availability:      true,
			ClutchPercentage:  pct(78),
			EntryStyle:        "Aggressive",
		},
		{
			ID:                "2",
			Name:              "UtilityMaster",
			Role:              "Support",
			Strengths:         []string{"Smoke timing", "Flash coordination", "Team utility"},
			LastThirtyDayForm: "Good",
			Summary:           "Strategic support player with deep understanding of CS:GO utility usage and team coordination.",
			Game:              "CS:GO",
			Region:            "North America",
			Experience:        ExperiencePro,
			Availability:      false,
			UtilityUsage:      "Expert",
		},
		{
			ID:                "3",
			Name:              "ClutchKing",
			Role:              "Rifler",
			Strengths:         []string{"Clutch situations", "Positioning", "Game sense"},
			LastThirtyDayForm: "Outstanding",
			Summary:           "Reliable rifler with exceptional clutch percentage and strategic thinking in CS:GO.",
			Game:              "CS:GO",
			Region:            "Asia",
			Experience:        ExperienceSemiPro,
			Availability:      true,
			ClutchPercentage:  pct(85),
		},
		{
			ID:                "4",
			Name:              "AWPMaster",
			Role:              "AWPer",
			Strengths:         []string{"Long range precision", "Map awareness", "Economic management"},
			LastThirtyDayForm: "Excellent",
			Summary:           "Elite AWPer with incredible precision and game-changing potential in clutch rounds.",
			Game:              "CS:GO",
			Region:            "Europe",
			Experience:        ExperiencePro,
			Availability:      true,
			ClutchPercentage:  pct(72),
			EntryStyle:        "Passive",
		},
		{
			ID:                "5",
			Name:              "IGL_Commander",
			Role:              "In-Game Leader",
			Strengths:         []string{"Strategic calling", "Team coordination", "Anti-stratting"},
			LastThirtyDayForm: "Good",
			Summary:           "Experienced IGL with strong tactical knowledge and team leadership in competitive CS:GO.",
			Game:              "CS:GO",
			Region:            "North America",
			Experience:        ExperiencePro,
			Availability:      false,
			UtilityUsage:      "Advanced",
		},
		{
			ID:                "6",
			Name:              "DuelistPrime",
			Role:              "Duelist",
			Strengths:         []string{"First contact wins", "Ability chaining", "Site execution"},
			LastThirtyDayForm: "Stable",
			Summary:           "Explosive VALORANT duelist who creates space on every round and converts openings reliably.",
			Game:              "VALORANT",
			Region:            "Europe",
			Experience:        ExperienceAmateur,
			Availability:      true,
			EntryStyle:        "Aggressive",
		},
		{
			ID:                "7",
			Name:              "WardMaestro",
			Role:              "Support",
			Strengths:         []string{"Vision control", "Lane rotations", "Draft reading"},
			LastThirtyDayForm: "Declining",
			Summary:           "Veteran Dota 2 position five with strong macro instincts and shot-calling experience.",
			Game:              "Dota 2",
			Region:            "South America",
			Experience:        ExperienceSemiPro,
			Availability:      false,
		},
	}
}

func pct(v int) *int {
	return &v
}
