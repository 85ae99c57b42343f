package export

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ShareLinker hands out opaque share links for lists. A token is minted once
// per list ID and reused on later calls, so a shared link stays stable for
// the lifetime of the process.
type ShareLinker struct {
	baseURL string

	mu     sync.Mutex
	tokens map[string]string // list ID -> token
}

func NewShareLinker(baseURL string) *ShareLinker {
	return &ShareLinker{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  make(map[string]string),
	}
}

// Link returns the share URL for the given list ID, minting a token on first
// use.
func (s *ShareLinker) Link(listID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[listID]
	if !ok {
		tok = uuid.NewString()
		s.tokens[listID] = tok
	}
	return fmt.Sprintf("%s/%s", s.baseURL, tok)
}

// Revoke drops the token for a list ID so the next Link call mints a fresh
// one. Used when a list is finalized.
func (s *ShareLinker) Revoke(listID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, listID)
}
