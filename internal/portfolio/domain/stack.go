package domain

import (
	"bytes"
	"encoding/json"
)

// StackGroup holds the items of one category in first-seen order.
type StackGroup struct {
	Category string
	Items    []StackItem
}

// StackGroups is an ordered category -> items mapping. It serializes as a
// JSON object whose keys keep the slice order.
type StackGroups []StackGroup

func (g StackGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, group := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(group.Category)
		if err != nil {
			return nil, err
		}
		items := group.Items
		if items == nil {
			items = []StackItem{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
