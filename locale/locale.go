// Package locale renders prize amounts for a player's language and keeps
// track of the language they picked.
package locale

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/they4kman/prizegrid/storage"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StorageKey is the slot holding the selected language tag.
const StorageKey = "lang"

var (
	// DefaultTag is used until the player picks a language.
	DefaultTag = language.Dutch
	// FallbackTag is used for requested languages we do not support.
	FallbackTag = language.English
)

var supported = []language.Tag{language.Dutch, language.English}

var matcher = language.NewMatcher(supported)

// Supported returns the supported language tags, default first.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Match resolves value to a supported tag. Unparseable or unsupported
// values resolve to FallbackTag.
func Match(value string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return FallbackTag
	}
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return FallbackTag
	}
	return supported[idx]
}

// Formatter renders prize amounts in euros with no fraction digits.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Prize formats amount, e.g. "€ 25.000" in Dutch or "€25,000" in English.
func (f *Formatter) Prize(amount int) string {
	symbol := f.printer.Sprint(currency.Symbol(currency.EUR))
	number := f.printer.Sprintf("%d", amount)
	if f.tag == language.Dutch {
		return symbol + " " + number
	}
	return symbol + number
}

// LoadTag returns the saved language, or DefaultTag if none was saved.
func LoadTag(ctx context.Context, slot storage.Slot) (language.Tag, error) {
	value, err := slot.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultTag, nil
	}
	if err != nil {
		return DefaultTag, fmt.Errorf("load language: %w", err)
	}
	return Match(string(value)), nil
}

// SaveTag persists tag as the player's language.
func SaveTag(ctx context.Context, slot storage.Slot, tag language.Tag) error {
	if err := slot.Put(ctx, StorageKey, []byte(tag.String())); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}
