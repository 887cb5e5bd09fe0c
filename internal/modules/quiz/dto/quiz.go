package dto

type PromptOutput struct {
	Word         string
	PartOfSpeech string
	Icon         string
	// Spaced is set when the word was drawn from the due subset.
	Spaced bool
	Due    int
}

type CheckInput struct {
	Word   string
	Answer string
}

type CheckOutput struct {
	Word       string
	Correct    bool
	Definition string
}

type ReviewItem struct {
	Word    string
	Choices []string
}

type GradeInput struct {
	Word   string
	Choice string
}

type StoryOutput struct {
	Words []string
}
