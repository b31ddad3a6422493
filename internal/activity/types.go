package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Activity represents a single activity participants can sign up for
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Spots formats the used capacity as "used/max"
func (a *Activity) Spots() string {
	return fmt.Sprintf("%d/%d", len(a.Participants), a.MaxParticipants)
}

// HasParticipant reports whether email is signed up
func (a *Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Collection maps activity names to activities and remembers the order in
// which the names appeared in the source document.
type Collection struct {
	names  []string
	byName map[string]*Activity
}

// NewCollection builds a collection from activities in the given order.
func NewCollection(activities ...Activity) *Collection {
	c := &Collection{byName: make(map[string]*Activity, len(activities))}
	for _, a := range activities {
		c.Put(a)
	}
	return c
}

// Put inserts or replaces an activity. A replaced activity keeps its position.
func (c *Collection) Put(a Activity) {
	if c.byName == nil {
		c.byName = make(map[string]*Activity)
	}
	if a.Participants == nil {
		a.Participants = []string{}
	}
	if _, ok := c.byName[a.Name]; !ok {
		c.names = append(c.names, a.Name)
	}
	c.byName[a.Name] = &a
}

// Get returns the activity with the given name
func (c *Collection) Get(name string) (*Activity, bool) {
	if c == nil {
		return nil, false
	}
	a, ok := c.byName[name]
	return a, ok
}

// Len returns the number of activities
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Names returns the activity names in collection order
func (c *Collection) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// All iterates over the activities in collection order
func (c *Collection) All() iter.Seq2[string, *Activity] {
	return func(yield func(string, *Activity) bool) {
		if c == nil {
			return
		}
		for _, name := range c.names {
			if !yield(name, c.byName[name]) {
				return
			}
		}
	}
}

// UnmarshalJSON decodes a JSON object keyed by activity name, keeping the
// key order of the document.
func (c *Collection) UnmarshalJSON(data []byte) error {
	*c = Collection{byName: make(map[string]*Activity)}

	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("activities: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("activities: expected name, got %v", tok)
		}

		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("activities: decode %q: %w", name, err)
		}
		a.Name = name
		c.Put(a)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the collection as a JSON object in collection order
func (c *Collection) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
