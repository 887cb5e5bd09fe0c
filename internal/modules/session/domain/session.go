package domain

import "time"

const SchemaVersion = 1

// ActiveSelection records which bucket is loaded, so a later process can rebuild the same active set.
type ActiveSelection struct {
	SchemaVersion int       `json:"schema_version"`
	SessionID     string    `json:"session_id"`
	Week          int       `json:"week"`
	Day           int       `json:"day"`
	LoadedAt      time.Time `json:"loaded_at"`
}

const (
	ManagedWordsStart = "<!-- vocabuilder:words:start -->"
	ManagedWordsEnd   = "<!-- vocabuilder:words:end -->"
)

type SheetWord struct {
	Word         string
	PartOfSpeech string
	Definition   string
	Mnemonic     string
	Sentence     string
	Synonyms     string
	Due          bool
}

// Sheet is a printable study sheet for one active set.
type Sheet struct {
	SessionID  string
	Week       int
	Day        int
	ExportedAt time.Time
	Words      []SheetWord
}
