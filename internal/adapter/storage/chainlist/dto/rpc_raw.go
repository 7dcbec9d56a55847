package chainlist_dto

import (
	"bytes"
	"encoding/json"
)

// RPCRaw is one entry of a chain's rpc array. Sources publish either a bare
// URL string or an object with a url field plus tracking metadata.
type RPCRaw struct {
	URL      string `json:"url"`
	Tracking string `json:"tracking,omitempty"`
}

// UnmarshalJSON accepts both the string and the object form.
func (r *RPCRaw) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.URL)
	}
	type plain RPCRaw
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = RPCRaw(p)
	return nil
}
