package entities

// ImportPractice is one practice-pricing record nested under an import procedure
type ImportPractice struct {
	PracticeName    string  `json:"practice_name"`
	PracticeAddress string  `json:"practice_address,omitempty"`
	PracticePhone   string  `json:"practice_phone,omitempty"`
	PracticeEmail   string  `json:"practice_email,omitempty"`
	Cost            float64 `json:"cost"`
	Currency        string  `json:"currency,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// ImportProcedure is one procedure record in an import batch
type ImportProcedure struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	Practices   []ImportPractice `json:"practices"`
}

// ImportBatch is the payload accepted by the bulk import engine
type ImportBatch struct {
	Procedures []ImportProcedure `json:"procedures"`
}

// ImportSummary reports what a bulk import wrote. Pricing entries count both
// creates and in-place updates; entity counts cover new rows only.
type ImportSummary struct {
	ImportedProcedures     int `json:"imported_procedures"`
	ImportedPractices      int `json:"imported_practices"`
	ImportedPricingEntries int `json:"imported_pricing_entries"`
}
