package menuboard

import (
	"context"
	"strings"
)

// Mode is the kiosk view a session is showing.
type Mode string

// Session modes.
const (
	ModeMenu Mode = "menu"
	ModeChat Mode = "chat"
)

// Role identifies the author of a transcript message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat transcript.
type Message struct {
	Role    Role
	Content string
}

// Session is the per-user state of the kiosk: which view is shown, what is
// selected in the menu browser, and the chat transcript. A session is not
// safe for concurrent use; callers serialize access.
type Session struct {
	ID       string
	Mode     Mode
	Brand    Brand
	Category string

	// Selected is the index of the detailed item within the current
	// listing, or -1 when the grid is shown.
	Selected int

	Transcript []Message

	// Pending is a suggested question chosen but not yet asked.
	Pending string

	// Notice is a message shown once on the next render.
	Notice string
}

// NewSession returns a session in menu mode showing brand.
func NewSession(id string, brand Brand) *Session {
	return &Session{
		ID:       id,
		Mode:     ModeMenu,
		Brand:    brand,
		Selected: -1,
	}
}

// SetMode switches between the menu browser and the chat.
func (s *Session) SetMode(m Mode) error {
	switch m {
	case ModeMenu, ModeChat:
		s.Mode = m
		return nil
	}
	return Errorf(EINVALID, "unknown mode %q", string(m))
}

// SelectBrand shows brand's menu. Switching brands clears the category and
// the selected item.
func (s *Session) SelectBrand(b Brand) {
	if b == s.Brand {
		return
	}
	s.Brand = b
	s.Category = ""
	s.Selected = -1
}

// SelectCategory narrows the listing to category; "" shows everything.
func (s *Session) SelectCategory(category string) {
	s.Category = category
	s.Selected = -1
}

// Listing returns the records currently shown in the grid.
func (s *Session) Listing(c *Catalog) []*MenuRecord {
	return c.Filter(s.Brand, s.Category)
}

// SelectItem opens the detail view for the index-th record of the listing.
func (s *Session) SelectItem(c *Catalog, index int) error {
	if index < 0 || index >= len(s.Listing(c)) {
		return Errorf(EINVALID, "menu item %d out of range", index)
	}
	s.Selected = index
	return nil
}

// SelectedRecord returns the record shown in the detail view.
func (s *Session) SelectedRecord(c *Catalog) (*MenuRecord, bool) {
	listing := s.Listing(c)
	if s.Selected < 0 || s.Selected >= len(listing) {
		return nil, false
	}
	return listing[s.Selected], true
}

// Back returns from the detail view to the grid.
func (s *Session) Back() {
	s.Selected = -1
}

// SuggestionsVisible reports whether suggested questions should be offered.
// They are shown only before the first message.
func (s *Session) SuggestionsVisible() bool {
	return len(s.Transcript) == 0
}

// Suggest queues a suggested question to be asked next.
func (s *Session) Suggest(question string) {
	s.Pending = strings.TrimSpace(question)
}

// History returns the completed question/answer pairs of the transcript.
// A question left without an answer is not included.
func (s *Session) History() []Turn {
	var turns []Turn
	for i := 0; i+1 < len(s.Transcript); i++ {
		q, a := s.Transcript[i], s.Transcript[i+1]
		if q.Role == RoleUser && a.Role == RoleAssistant {
			turns = append(turns, Turn{Question: q.Content, Answer: a.Content})
			i++
		}
	}
	return turns
}

// Ask sends question to asker with the session's history and records both
// sides in the transcript. An empty question asks the pending suggestion.
// On failure the question stays in the transcript without an answer.
func (s *Session) Ask(ctx context.Context, asker Asker, question string) (string, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		q = s.Pending
	}
	s.Pending = ""
	if q == "" {
		return "", Errorf(EINVALID, "question required")
	}

	history := s.History()
	s.Transcript = append(s.Transcript, Message{Role: RoleUser, Content: q})

	answer, err := asker.Ask(ctx, q, history)
	if err != nil {
		return "", err
	}
	s.Transcript = append(s.Transcript, Message{Role: RoleAssistant, Content: answer})
	return answer, nil
}

// Reset clears the conversation.
func (s *Session) Reset() {
	s.Transcript = nil
	s.Pending = ""
}

// TakeNotice returns and clears the pending notice.
func (s *Session) TakeNotice() string {
	n := s.Notice
	s.Notice = ""
	return n
}
