package export

import (
	"strings"
	"testing"
)

func TestShareLinkerStableAndRevocable(t *testing.T) {
	s := NewShareLinker("https://listinha.app/l/")

	link := s.Link("list-1")
	if !strings.HasPrefix(link, "https://listinha.app/l/") {
		t.Fatalf("link %q missing base URL", link)
	}
	if strings.Contains(link, "//l") && strings.Count(link, "//") > 1 {
		t.Fatalf("link %q has a doubled slash", link)
	}
	if s.Link("list-1") != link {
		t.Error("token must be stable for the same list")
	}
	if s.Link("list-2") == link {
		t.Error("distinct lists must not share a token")
	}

	s.Revoke("list-1")
	if s.Link("list-1") == link {
		t.Error("revoked token must not be reused")
	}
}
