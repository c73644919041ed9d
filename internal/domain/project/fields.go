package project

import "encoding/json"

// UnmarshalJSON matches members by exact key. A member whose value does not
// fit its field is kept verbatim in Extra and the field stays unset.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	raw, err := objectMembers(data)
	if err != nil || raw == nil {
		return err
	}
	var p Manifest
	p.Extra = decodeMembers(raw, map[string]func(json.RawMessage) bool{
		"id":             member(&p.ID),
		"title":          member(&p.Title),
		"ownerId":        member(&p.OwnerID),
		"status":         member(&p.Status),
		"priority":       member(&p.Priority),
		"priorityOrder":  member(&p.PriorityOrder),
		"priorityNumber": member(&p.PriorityNumber),
		"progress":       member(&p.Progress),
		"icon":           member(&p.Icon),
		"updatedAt":      member(&p.UpdatedAt),
		"images":         member(&p.Images),
		"videos":         member(&p.Videos),
		"ganttImage":     member(&p.GanttImage),
		"ganttImagePath": member(&p.GanttImagePath),
	})
	*m = p
	return nil
}

func (m Manifest) MarshalJSON() ([]byte, error) {
	type plain Manifest
	return marshalWithExtra(plain(m), m.Extra)
}

// UnmarshalJSON keeps a non-object element verbatim.
func (a *MediaAsset) UnmarshalJSON(data []byte) error {
	raw, err := objectMembers(data)
	if err != nil {
		*a = MediaAsset{verbatim: append(json.RawMessage(nil), data...)}
		return nil
	}
	if raw == nil {
		return nil
	}
	var p MediaAsset
	p.Extra = decodeMembers(raw, map[string]func(json.RawMessage) bool{
		"src":   member(&p.Path),
		"title": member(&p.Title),
	})
	*a = p
	return nil
}

func (a MediaAsset) MarshalJSON() ([]byte, error) {
	if a.verbatim != nil {
		return a.verbatim, nil
	}
	type plain MediaAsset
	return marshalWithExtra(plain(a), a.Extra)
}

// objectMembers splits a JSON object into its members. null yields nil.
func objectMembers(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// member decodes into dst only when the whole value fits its type.
func member[T any](dst *T) func(json.RawMessage) bool {
	return func(value json.RawMessage) bool {
		var v T
		if err := json.Unmarshal(value, &v); err != nil {
			return false
		}
		*dst = v
		return true
	}
}

// decodeMembers feeds each member to its decoder and returns the members
// that have none or did not decode.
func decodeMembers(raw map[string]json.RawMessage, decoders map[string]func(json.RawMessage) bool) map[string]json.RawMessage {
	var extra map[string]json.RawMessage
	for key, value := range raw {
		if decode, ok := decoders[key]; ok && decode(value) {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[key] = value
	}
	return extra
}

// marshalWithExtra encodes v and merges extra members in. Named fields win
// over extra members with the same key unless they encode as null.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	known, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return known, err
	}
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if named, ok := merged[k]; !ok || string(named) == "null" {
			merged[k] = val
		}
	}
	return json.Marshal(merged)
}
