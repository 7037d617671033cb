package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/lndash/lndash/internal/database/repository"
	"github.com/lndash/lndash/internal/lnd"
)

// PeerService manages node peers and the saved-contact book.
type PeerService struct {
	Node     lnd.NodeClient
	Contacts *repository.ContactRepo
}

func (s *PeerService) Connect(ctx context.Context, pubkey, host string) error {
	if s.Node == nil {
		return fmt.Errorf("peers: node client not configured")
	}
	pubkey = strings.TrimSpace(pubkey)
	if pubkey == "" {
		return fmt.Errorf("peers: pubkey required")
	}
	return s.Node.ConnectPeer(ctx, lnd.ConnectPeerRequest{Pubkey: pubkey, Host: strings.TrimSpace(host)})
}

func (s *PeerService) Disconnect(ctx context.Context, pubkey string) error {
	if s.Node == nil {
		return fmt.Errorf("peers: node client not configured")
	}
	return s.Node.DisconnectPeer(ctx, strings.TrimSpace(pubkey))
}

// SaveContact stores or updates a named contact for a pubkey.
func (s *PeerService) SaveContact(ctx context.Context, name, pubkey, host string) error {
	if s.Contacts == nil {
		return fmt.Errorf("peers: contacts repo not configured")
	}
	name = strings.TrimSpace(name)
	pubkey = strings.TrimSpace(pubkey)
	if name == "" || pubkey == "" {
		return fmt.Errorf("peers: name and pubkey required")
	}
	c := repository.Contact{ID: uuid.NewString(), Name: name, Pubkey: pubkey}
	if h := strings.TrimSpace(host); h != "" {
		c.Host = &h
	}
	return s.Contacts.Upsert(ctx, c)
}

func (s *PeerService) DeleteContact(ctx context.Context, id string) error {
	if s.Contacts == nil {
		return fmt.Errorf("peers: contacts repo not configured")
	}
	return s.Contacts.Delete(ctx, id)
}

func (s *PeerService) ListContacts(ctx context.Context) ([]repository.Contact, error) {
	if s.Contacts == nil {
		return nil, nil
	}
	return s.Contacts.List(ctx)
}

// SearchContacts ranks contacts by fuzzy name similarity to query. An empty
// query returns all contacts in name order. Contacts with no meaningful
// similarity are dropped.
func (s *PeerService) SearchContacts(ctx context.Context, query string) ([]repository.Contact, error) {
	all, err := s.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return all, nil
	}

	type scored struct {
		c     repository.Contact
		score float64
	}
	var matches []scored
	for _, c := range all {
		name := strings.ToLower(c.Name)
		score := similarity(name, query)
		if strings.Contains(name, query) && score < 0.5 {
			score = 0.5 // substring hit always survives
		}
		if score < 0.3 {
			continue
		}
		matches = append(matches, scored{c: c, score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	out := make([]repository.Contact, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.c)
	}
	return out, nil
}

func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	// ComputeDistance counts runes, so the normalizing length must too
	maxlen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxlen {
		maxlen = n
	}
	if maxlen == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxlen)
}
