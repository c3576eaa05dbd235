package anki

import (
	"context"
	"encoding/json"
	"fmt"
)

// DeckNames lists all deck names. Nested decks use "::" separators,
// e.g. "Languages::French::Vocabulary".
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	raw, err := c.Invoke(ctx, "deckNames", nil)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, fmt.Errorf("decode deckNames result: %w", err)
	}
	return names, nil
}

// CreateDeck creates a deck and returns its ID. Creating a deck that
// already exists is a no-op returning the existing ID.
func (c *Client) CreateDeck(ctx context.Context, deck string) (int64, error) {
	raw, err := c.Invoke(ctx, "createDeck", map[string]any{"deck": deck})
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		return 0, fmt.Errorf("decode createDeck result: %w", err)
	}
	return id, nil
}

// DeleteDecks deletes the named decks. With cardsToo false, Anki moves
// the contained cards to the Default deck instead of deleting them.
func (c *Client) DeleteDecks(ctx context.Context, decks []string, cardsToo bool) error {
	_, err := c.Invoke(ctx, "deleteDecks", map[string]any{
		"decks":    decks,
		"cardsToo": cardsToo,
	})
	return err
}
