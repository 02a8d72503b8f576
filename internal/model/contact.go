package model

import "encoding/json"

// Contact is one emergency contact, kept as the raw JSON the client sent
// so fields the server does not interpret survive a save.
type Contact json.RawMessage

func (c Contact) MarshalJSON() ([]byte, error) {
	return json.RawMessage(c).MarshalJSON()
}

func (c *Contact) UnmarshalJSON(data []byte) error {
	return (*json.RawMessage)(c).UnmarshalJSON(data)
}

// Summary extracts the name and phone for notification logs. String
// fields are unquoted; other values come back as their JSON text.
func (c Contact) Summary() (name, phone string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c, &fields); err != nil {
		return "", ""
	}
	return jsonText(fields["name"]), jsonText(fields["phone"])
}

func jsonText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// ContactsRequest replaces the caller's whole contact list.
type ContactsRequest struct {
	Contacts []Contact `json:"contacts"`
}
