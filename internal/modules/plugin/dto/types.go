package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
	Options      map[string]string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

// WordFields mirrors a library entry field for field.
type WordFields struct {
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

type EnrichInput struct {
	PluginName string
	Entries    []WordFields
}

type EnrichOutput struct {
	PluginName string
	Entries    []WordFields
	Changed    int
}
