package scalar

import (
	"encoding/json"

	"gopkg.in/guregu/null.v3"
)

// NumberOrText is a nullable cell that is a number when it parses as one and
// the raw text otherwise.
type NumberOrText struct {
	Number null.Float
	Text   string
}

func (n NumberOrText) MarshalJSON() ([]byte, error) {
	if n.Text != "" {
		return json.Marshal(n.Text)
	}
	return n.Number.MarshalJSON()
}

func (n *NumberOrText) UnmarshalJSON(b []byte) error {
	*n = NumberOrText{}
	if err := json.Unmarshal(b, &n.Text); err == nil {
		return nil
	}
	return n.Number.UnmarshalJSON(b)
}
