package models

import (
	"sort"
	"time"
)

// ColorPalette is the fixed rotation of avatar colors. Assignment depends
// only on join order, never on the display name.
var ColorPalette = []string{
	"#e6194b", // red
	"#3cb44b", // green
	"#4363d8", // blue
	"#f58231", // orange
	"#911eb4", // purple
	"#46f0f0", // cyan
	"#f032e6", // magenta
	"#bcf60c", // lime
	"#fabebe", // pink
	"#008080", // teal
}

// Participant is the live state for one websocket connection.
// The connection identity is opaque and never reused; it is NOT a stable
// key across reconnects. Detection history lives in the ledger, keyed by
// display name.
type Participant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"-"`
}

// Directory tracks participants keyed by live connection identity.
// It holds no detection state and is mutated only by the hub goroutine.
type Directory struct {
	participants map[string]*Participant
}

func NewDirectory() *Directory {
	return &Directory{
		participants: make(map[string]*Participant),
	}
}

// Join creates the participant for a connection, or renames an existing
// one when the same connection joins again. The caller passes an already
// sanitized name and the spawn position. Color is assigned from the
// palette by the participant count at assignment time and stays stable
// for the lifetime of the connection.
func (d *Directory) Join(connID, name string, x, y float64) *Participant {
	if p, ok := d.participants[connID]; ok {
		p.Name = name
		return p
	}

	p := &Participant{
		ID:       connID,
		Name:     name,
		X:        x,
		Y:        y,
		Color:    ColorPalette[len(d.participants)%len(ColorPalette)],
		JoinedAt: time.Now(),
	}
	d.participants[connID] = p
	return p
}

// UpdatePosition overwrites the position for a known connection,
// last-write-wins with no bounds validation. Unknown connections are a
// harmless race (event arrived after disconnect) and are ignored.
// The stored position is what detection validation trusts; the client's
// own proximity claim never is.
func (d *Directory) UpdatePosition(connID string, x, y float64) bool {
	p, ok := d.participants[connID]
	if !ok {
		return false
	}
	p.X = x
	p.Y = y
	return true
}

// Remove deletes the participant for a connection. Idempotent.
func (d *Directory) Remove(connID string) {
	delete(d.participants, connID)
}

func (d *Directory) Get(connID string) (*Participant, bool) {
	p, ok := d.participants[connID]
	return p, ok
}

func (d *Directory) Len() int {
	return len(d.participants)
}

// Snapshot returns a value copy of all participants in join order,
// safe to hand to encoders outside the hub goroutine.
func (d *Directory) Snapshot() []Participant {
	out := make([]Participant, 0, len(d.participants))
	for _, p := range d.participants {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out
}
