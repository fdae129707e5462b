package catalog

import "github.com/salesdojo/salesdojo/internal/models"

// BuiltinScenarios returns the scenarios shipped with the binary. SQLite
// catalogs seed these on first migrate; the memory catalog serves them
// directly.
func BuiltinScenarios() []*models.Scenario {
	return []*models.Scenario{
		{
			ID:           "cold-call-vp-eng",
			Title:        "Cold Call to VP of Engineering",
			Description:  "Reach out to a VP of Engineering at a mid-size SaaS company about your DevOps automation tool.",
			ProspectName: "Sarah Chen",
			ProspectRole: "VP of Engineering",
			Company:      "TechFlow Solutions",
			Industry:     "B2B SaaS",
			CompanySize:  "150-200 employees",
			Background:   "Sarah has been with TechFlow for 3 years. The engineering team is growing rapidly and struggling with deployment bottlenecks. They currently use a mix of Jenkins and manual processes.",
			PainPoints: []string{
				"Slow deployment cycles (3-4 days)",
				"Manual testing processes",
				"Lack of visibility into deployment status",
				"Team spending too much time on DevOps instead of features",
			},
			InitialMood: models.MoodSkeptical,
			Difficulty:  models.DifficultyHard,
		},
		{
			ID:           "discovery-cfo",
			Title:        "Discovery Call with CFO",
			Description:  "Conduct a discovery call with a CFO who is evaluating financial planning software.",
			ProspectName: "Michael Torres",
			ProspectRole: "Chief Financial Officer",
			Company:      "GrowthMetrics Inc",
			Industry:     "Financial Services",
			CompanySize:  "50-75 employees",
			Background:   "Michael is looking to replace their current Excel-based financial planning process. Budget is approved but he's evaluating multiple vendors.",
			PainPoints: []string{
				"Time-consuming manual consolidation",
				"Lack of real-time visibility",
				"Version control issues",
				"Difficulty creating what-if scenarios",
			},
			InitialMood: models.MoodNeutral,
			Difficulty:  models.DifficultyMedium,
		},
		{
			ID:           "demo-hr-director",
			Title:        "Product Demo with HR Director",
			Description:  "Present your HR analytics platform to an HR Director who has already seen a demo.",
			ProspectName: "Lisa Patel",
			ProspectRole: "HR Director",
			Company:      "Innovate Corp",
			Industry:     "Technology",
			CompanySize:  "300-500 employees",
			Background:   "Lisa attended your webinar last month and requested a personalized demo. She's currently using Workday but frustrated with limited analytics.",
			PainPoints: []string{
				"Can't easily track DEI metrics",
				"Limited customization in reports",
				"Poor integration with existing tools",
				"High costs for additional modules",
			},
			InitialMood: models.MoodInterested,
			Difficulty:  models.DifficultyEasy,
		},
	}
}
