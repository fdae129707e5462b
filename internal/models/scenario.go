package models

// Mood represents the prospect's current disposition toward the salesperson.
type Mood string

const (
	MoodSkeptical  Mood = "skeptical"
	MoodNeutral    Mood = "neutral"
	MoodInterested Mood = "interested"
	MoodDefensive  Mood = "defensive"
)

// Escalate returns the next mood up the warmth ladder. Interested is the
// ceiling; defensive is not on the ladder and is returned unchanged.
func (m Mood) Escalate() Mood {
	switch m {
	case MoodSkeptical:
		return MoodNeutral
	case MoodNeutral:
		return MoodInterested
	case MoodInterested:
		return MoodInterested
	default:
		return m
	}
}

// Difficulty represents how hard a scenario's prospect is to win over.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Scenario describes a practice prospect: who they are, the company they
// work for, and what is hurting them. Scenarios are immutable; a session
// captures a snapshot at creation time.
type Scenario struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Description  string     `json:"description" yaml:"description"`
	ProspectName string     `json:"prospectName" yaml:"prospect_name"`
	ProspectRole string     `json:"prospectRole" yaml:"prospect_role"`
	Company      string     `json:"company" yaml:"company"`
	Industry     string     `json:"industry" yaml:"industry"`
	CompanySize  string     `json:"companySize" yaml:"company_size"`
	Background   string     `json:"background" yaml:"background"`
	PainPoints   []string   `json:"painPoints" yaml:"pain_points"`
	InitialMood  Mood       `json:"initialMood" yaml:"initial_mood"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty"`
}
