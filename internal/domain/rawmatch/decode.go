package rawmatch

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/lol-companion/internal/domain/match"
)

// ErrInvalidPayload matches every *DecodeError through errors.Is.
var ErrInvalidPayload = errors.New("invalid match payload")

// FieldError names one payload field that failed validation. Path uses the
// payload's own field names, e.g. "info.participants[3].lane". Syntax errors
// are reported on path "$".
type FieldError struct {
	Path  string
	Rule  string
	Value any
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s (%s: %v)", f.Path, f.Rule, f.Value)
}

// DecodeError lists every field of one payload that failed validation.
type DecodeError struct {
	MatchID string
	Fields  []FieldError
}

func (e *DecodeError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, field.String())
	}
	if e.MatchID != "" {
		return fmt.Sprintf("decode match %s: %d invalid field(s): %s", e.MatchID, len(e.Fields), strings.Join(parts, ", "))
	}
	return fmt.Sprintf("decode match: %d invalid field(s): %s", len(e.Fields), strings.Join(parts, ", "))
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidPayload
}

// Paths returns the failed field paths in report order.
func (e *DecodeError) Paths() []string {
	out := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		out = append(out, field.Path)
	}
	return out
}

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return field.Name
		default:
			return name
		}
	})

	rules := map[string]validator.Func{
		"gamemode": func(fl validator.FieldLevel) bool {
			return match.GameMode(fl.Field().String()).Known()
		},
		"gametype": func(fl validator.FieldLevel) bool {
			return match.GameType(fl.Field().String()).Known()
		},
		"queue": func(fl validator.FieldLevel) bool {
			return match.Queue(fl.Field().Int()).Known()
		},
		"mapid": func(fl validator.FieldLevel) bool {
			return match.MapID(fl.Field().Int()).Known()
		},
		"rawteamid": func(fl validator.FieldLevel) bool {
			id := fl.Field().Int()
			return id == 0 || match.TeamID(id).Valid()
		},
		"lane": func(fl validator.FieldLevel) bool {
			return match.Lane(fl.Field().String()).Known()
		},
		"role": func(fl validator.FieldLevel) bool {
			return match.Role(fl.Field().String()).Known()
		},
		"position": func(fl validator.FieldLevel) bool {
			return match.Position(fl.Field().String()).Known()
		},
		"platform": func(fl validator.FieldLevel) bool {
			return match.Platform(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	return v
}

// Decode parses a match-v5 payload. Legacy synonyms are rewritten before enum
// validation. Any failure is a *DecodeError.
func Decode(payload []byte) (RawMatch, error) {
	var raw RawMatch
	if err := sonic.Unmarshal(payload, &raw); err != nil {
		return RawMatch{}, &DecodeError{
			Fields: []FieldError{{Path: "$", Rule: "json", Value: err.Error()}},
		}
	}

	applySynonyms(&raw)

	if err := payloadValidator.Struct(raw); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return RawMatch{}, fmt.Errorf("validate match payload: %w", err)
		}

		out := &DecodeError{
			MatchID: raw.Metadata.MatchID,
			Fields:  make([]FieldError, 0, len(validationErrs)),
		}
		for _, fe := range validationErrs {
			out.Fields = append(out.Fields, FieldError{
				Path:  fieldPath(fe.Namespace()),
				Rule:  fe.Tag(),
				Value: fe.Value(),
			})
		}
		return RawMatch{}, out
	}

	clearSkippedBans(&raw)
	return raw, nil
}

func clearSkippedBans(raw *RawMatch) {
	for i := range raw.Info.Teams {
		bans := raw.Info.Teams[i].Bans
		for j := range bans {
			if bans[j].ChampionID != nil && *bans[j].ChampionID == NoBanChampion {
				bans[j].ChampionID = nil
			}
		}
	}
}

// fieldPath drops the leading struct name validator puts on namespaces.
func fieldPath(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}
