package dto

type IngestInput struct {
	Name    string
	Content []byte
	// Enrich lists plugin names to run over the batch. Nil falls back to the configured list.
	Enrich []string
}

type IngestOutput struct {
	Inserted  int
	Skipped   int
	Truncated int
	Total     int
	Enriched  []string
}

type WordOutput struct {
	Word              string
	Definition        string
	PartOfSpeech      string
	Mnemonic          string
	Sentence          string
	Icon              string
	Synonyms          string
	MoreSynonyms      string
	Level             string
	StoryBuilder      string
	MnemonicSourceURL string
}

// SequenceOutput is the seed words followed by the library, the input to partitioning.
type SequenceOutput struct {
	Words   []WordOutput
	Seed    int
	Library int
}
