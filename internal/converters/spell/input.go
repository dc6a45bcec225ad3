package spell

// Input is a spell record
type Input struct {
	Name               string          `json:"name"`
	Source             string          `json:"source"`
	Page               int             `json:"page"`
	Level              int             `json:"level"`
	School             string          `json:"school"`
	Time               []CastingTime   `json:"time"`
	Range              Range           `json:"range"`
	Components         map[string]any  `json:"components"`
	Duration           []Duration      `json:"duration"`
	Meta               map[string]bool `json:"meta"`
	Entries            []any           `json:"entries"`
	EntriesHigherLevel []any           `json:"entriesHigherLevel"`
	DamageInflict      []string        `json:"damageInflict"`
	SavingThrow        []string        `json:"savingThrow"`
	ScalingLevelDice   any             `json:"scalingLevelDice"`
}

// CastingTime is one entry of the time list
type CastingTime struct {
	Number    int    `json:"number"`
	Unit      string `json:"unit"`
	Condition string `json:"condition"`
}

// Range is the spell's range block
type Range struct {
	Type     string   `json:"type"`
	Distance Distance `json:"distance"`
}

// Distance is an amount of some unit, or a unit alone for self, touch,
// sight and unlimited
type Distance struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

// Duration is one entry of the duration list
type Duration struct {
	Type          string   `json:"type"`
	Duration      Distance `json:"duration"`
	Concentration bool     `json:"concentration"`
	Ends          []string `json:"ends"`
}
