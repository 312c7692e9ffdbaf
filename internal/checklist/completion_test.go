package checklist

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionMap_JSON(t *testing.T) {
	raw := `{"p1_docs":true,"p1_fumigation":false,"p1_fumigation_remarks":"late","remarks_list":[{"id":"r1","text":"x","completed":false}],"gone":null}`

	var m CompletionMap
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.True(t, m.Checked("p1_docs"))
	assert.False(t, m.Checked("p1_fumigation"))
	assert.True(t, m["p1_fumigation"].IsBool())
	assert.Equal(t, "late", m.Remarks("p1_fumigation"))
	assert.False(t, m.Checked("remarks_list"))
	assert.False(t, m.Checked("missing"))

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestValue_UnmarshalRejectsInvalidJSON(t *testing.T) {
	var v Value
	assert.Error(t, v.UnmarshalJSON([]byte("{nope")))
}

func TestSetTaskState_DoesNotMutateInput(t *testing.T) {
	original := CompletionMap{"p1_docs": BoolValue(true)}

	updated := SetTaskState(original, "p1_fumigation", BoolValue(true))
	updated = SetTaskState(updated, "p1_docs", BoolValue(false))

	assert.Len(t, original, 1)
	assert.True(t, original.Checked("p1_docs"))
	assert.False(t, updated.Checked("p1_docs"))
	assert.True(t, updated.Checked("p1_fumigation"))

	fromNil := SetTaskState(nil, RemarksKey("p4_prepare_bl"), TextValue("waiting on carrier"))
	assert.Equal(t, "waiting on carrier", fromNil.Remarks("p4_prepare_bl"))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "p4_prepare_bl_remarks", RemarksKey("p4_prepare_bl"))
	assert.True(t, IsRemarksKey(RemarksKey("p1_docs")))
	assert.False(t, IsRemarksKey("p1_docs"))
	assert.Equal(t, "p3b_confirm_subtask_0", SubTaskKey("p3b_confirm", 0))
}
