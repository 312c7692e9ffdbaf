package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	remarksSuffix = "_remarks"
	subTaskInfix  = "_subtask_"
)

type valueKind uint8

const (
	valueNone valueKind = iota
	valueBool
	valueText
	valueRaw
)

// Value is one completion map entry: a checkbox state, a free-text remark,
// or any other JSON stored by older clients. Only a true boolean counts as done.
type Value struct {
	kind valueKind
	b    bool
	s    string
	raw  json.RawMessage
}

func BoolValue(b bool) Value {
	return Value{kind: valueBool, b: b}
}

func TextValue(s string) Value {
	return Value{kind: valueText, s: s}
}

// Checked reports whether the value is the boolean true.
func (v Value) Checked() bool {
	return v.kind == valueBool && v.b
}

func (v Value) IsBool() bool {
	return v.kind == valueBool
}

// Text returns the string payload of a text value.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == valueText
}

func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case valueBool:
		return v.b == other.b
	case valueText:
		return v.s == other.s
	case valueRaw:
		return bytes.Equal(v.raw, other.raw)
	default:
		return true
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case valueBool:
		return json.Marshal(v.b)
	case valueText:
		return json.Marshal(v.s)
	case valueRaw:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*v = Value{}
	case bytes.Equal(trimmed, []byte("true")), bytes.Equal(trimmed, []byte("false")):
		*v = BoolValue(trimmed[0] == 't')
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = TextValue(s)
	default:
		if !json.Valid(trimmed) {
			return fmt.Errorf("invalid completion value %q", trimmed)
		}
		*v = Value{kind: valueRaw, raw: append(json.RawMessage(nil), trimmed...)}
	}
	return nil
}

// CompletionMap records checkbox and remark state keyed by task id. Keys that
// no resolved task produces are kept but ignored by progress math.
type CompletionMap map[string]Value

// Checked reports whether taskID is marked done.
func (m CompletionMap) Checked(taskID string) bool {
	return m[taskID].Checked()
}

// Remarks returns the free-text remark attached to taskID, if any.
func (m CompletionMap) Remarks(taskID string) string {
	s, _ := m[RemarksKey(taskID)].Text()
	return s
}

// SetTaskState returns a copy of m with taskID set to value. m is not modified.
func SetTaskState(m CompletionMap, taskID string, value Value) CompletionMap {
	return lo.Assign(m, CompletionMap{taskID: value})
}

// RemarksKey is the completion map key holding free-text remarks for taskID.
func RemarksKey(taskID string) string {
	return taskID + remarksSuffix
}

func IsRemarksKey(key string) bool {
	return strings.HasSuffix(key, remarksSuffix)
}

// SubTaskKey is the key a client uses for the idx-th sub-task checkbox of taskID.
// Sub-task keys are stored like any other key and never counted.
func SubTaskKey(taskID string, idx int) string {
	return taskID + subTaskInfix + strconv.Itoa(idx)
}
