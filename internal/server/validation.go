package server

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"swipe-judge/internal/db"

	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength        = 80
	maxQuestionLength    = 200
	maxContentTextLength = 500
	maxURLLength         = 512
	maxParticipantLength = 64
	maxMinPlayers        = 64
)

var validate = validator.New()

func validateGameRequest(req *gameRequest, maxTimerSeconds int) error {
	if err := validate.Struct(req); err != nil {
		return resolveFieldError(err)
	}
	name, err := validateText("name", req.Name, maxNameLength)
	if err != nil {
		return err
	}
	question, err := validateText("question", req.Question, maxQuestionLength)
	if err != nil {
		return err
	}
	if req.MinPlayers > maxMinPlayers {
		return fmt.Errorf("minPlayers must be %d or fewer", maxMinPlayers)
	}
	seen := make(map[string]struct{}, len(req.Modes))
	for _, mode := range req.Modes {
		if _, dup := seen[mode]; dup {
			return errors.New("modes must not repeat")
		}
		seen[mode] = struct{}{}
	}
	if req.UseTimer && req.Timer <= 0 {
		return errors.New("timer duration is required when useTimer is set")
	}
	if req.Timer > maxTimerSeconds {
		return fmt.Errorf("timer must be %d seconds or fewer", maxTimerSeconds)
	}
	req.Name = name
	req.Question = question
	return nil
}

// validateContentRequest enforces the payload tagged union: image and video
// carry a URL, text carries a body, and the other field must be absent.
func validateContentRequest(req *contentRequest) error {
	if err := validate.Struct(req); err != nil {
		return resolveFieldError(err)
	}
	switch req.Type {
	case db.ContentImage, db.ContentVideo:
		url := strings.TrimSpace(req.URL)
		if url == "" {
			return fmt.Errorf("%s content requires url", req.Type)
		}
		if len(url) > maxURLLength {
			return fmt.Errorf("url must be %d characters or fewer", maxURLLength)
		}
		if strings.TrimSpace(req.Text) != "" {
			return fmt.Errorf("%s content must not carry text", req.Type)
		}
		req.URL = url
		req.Text = ""
	case db.ContentText:
		text, err := validateText("text", req.Text, maxContentTextLength)
		if err != nil {
			return err
		}
		if strings.TrimSpace(req.URL) != "" {
			return errors.New("text content must not carry url")
		}
		req.Text = text
		req.URL = ""
	default:
		return errors.New("type must be image, text or video")
	}
	return nil
}

func validateParticipantID(raw string) (string, error) {
	return validateText("participantId", raw, maxParticipantLength)
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	if !isSafeText(trimmed) {
		return "", fmt.Errorf("%s contains unsupported characters", label)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

// isSafeText rejects control characters and invalid UTF-8 while leaving
// room for non-ASCII question text.
func isSafeText(text string) bool {
	if !utf8.ValidString(text) {
		return false
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func resolveFieldError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			switch verr.Tag() {
			case "required":
				return fmt.Errorf("%s is required", jsonFieldName(verr.Field()))
			case "min", "max", "gte", "lte":
				return fmt.Errorf("%s is out of range", jsonFieldName(verr.Field()))
			case "oneof":
				return fmt.Errorf("%s has an unsupported value", jsonFieldName(verr.Field()))
			}
		}
	}
	return errors.New("invalid request")
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
