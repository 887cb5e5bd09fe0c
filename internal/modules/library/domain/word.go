package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

const DefaultIcon = "icons/placeholder.png"

// WordEntry is one vocabulary record. Word is the case-sensitive identity.
type WordEntry struct {
	Word              string `json:"word" yaml:"word" validate:"required"`
	Definition        string `json:"definition" yaml:"definition" validate:"required"`
	PartOfSpeech      string `json:"partOfSpeech" yaml:"partOfSpeech"`
	Mnemonic          string `json:"mnemonic" yaml:"mnemonic"`
	Sentence          string `json:"sentence" yaml:"sentence"`
	Icon              string `json:"icon" yaml:"icon"`
	Synonyms          string `json:"synonyms" yaml:"synonyms"`
	MoreSynonyms      string `json:"moreSynonyms" yaml:"moreSynonyms"`
	Level             string `json:"level" yaml:"level"`
	StoryBuilder      string `json:"storyBuilder" yaml:"storyBuilder"`
	MnemonicSourceURL string `json:"mnemonicSourceUrl" yaml:"mnemonicSourceUrl"`
}

var validate = validator.New()

func (w WordEntry) Validate() error {
	if strings.TrimSpace(w.Word) == "" {
		return fmt.Errorf("word is required")
	}
	if strings.TrimSpace(w.Definition) == "" {
		return fmt.Errorf("definition is required for %q", w.Word)
	}
	return validate.Struct(w)
}

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// DetectFormat picks the decoder from the file name; only a .csv suffix selects CSV.
func DetectFormat(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}
