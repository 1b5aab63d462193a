package models

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/wordflash/internal/errors"
)

const (
	DefaultLearnCount  = 10
	DefaultReviewCount = 15
	DefaultTestCount   = 20
)

// Settings are the per-mode session sizes.
type Settings struct {
	LearnCount  int `json:"learn_count" validate:"gt=0"`
	ReviewCount int `json:"review_count" validate:"gt=0"`
	TestCount   int `json:"test_count" validate:"gt=0"`
}

func DefaultSettings() Settings {
	return Settings{
		LearnCount:  DefaultLearnCount,
		ReviewCount: DefaultReviewCount,
		TestCount:   DefaultTestCount,
	}
}

var validate = validator.New()

// Validate rejects non-positive counts with a VALIDATION_ERROR naming every bad field.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.NewValidationError("settings", err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, settingsFieldName(fe.Field()))
	}
	return errors.NewValidationError(strings.Join(fields, ", "), "must be a positive integer")
}

// CountFor returns the session size configured for mode.
func (s Settings) CountFor(mode Mode) int {
	switch mode {
	case ModeLearn:
		return s.LearnCount
	case ModeReview:
		return s.ReviewCount
	case ModeTest:
		return s.TestCount
	}
	return 0
}

func settingsFieldName(field string) string {
	switch field {
	case "LearnCount":
		return "learn_count"
	case "ReviewCount":
		return "review_count"
	case "TestCount":
		return "test_count"
	}
	return field
}
