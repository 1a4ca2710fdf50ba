package node

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionTables(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mode mode
		key  opaqueKey
		want opaqueAction
	}{
		{modeMap, opaqueKey{root: true}, opaqueExpandMap},
		{modeMap, opaqueKey{root: true, expand: true}, opaqueExpandMap},
		{modeMap, opaqueKey{root: true, nested: true}, opaqueExpandMap},
		{modeMap, opaqueKey{root: true, expand: true, nested: true}, opaqueExpandMap},
		{modeMap, opaqueKey{expand: true}, opaqueExpandMap},
		{modeMap, opaqueKey{expand: true, nested: true}, opaqueExpandMap},
		{modeMap, opaqueKey{}, opaquePassthrough},
		{modeMap, opaqueKey{nested: true}, opaquePassthrough},

		{modeRecord, opaqueKey{root: true}, opaqueExpandRecord},
		{modeRecord, opaqueKey{root: true, expand: true}, opaqueExpandRecord},
		{modeRecord, opaqueKey{root: true, nested: true}, opaqueExpandRecord},
		{modeRecord, opaqueKey{root: true, expand: true, nested: true}, opaqueExpandRecord},
		{modeRecord, opaqueKey{expand: true}, opaqueExpandMap},
		{modeRecord, opaqueKey{expand: true, nested: true}, opaqueExpandRecord},
		{modeRecord, opaqueKey{}, opaquePassthrough},
		{modeRecord, opaqueKey{nested: true}, opaquePassthrough},

		{modeFold, opaqueKey{root: true, expand: true, nested: true}, opaquePassthrough},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, decideOpaque(tc.mode, tc.key), "mode %d %+v", tc.mode, tc.key)
	}

	assert.Len(t, mapOpaqueTable, 8)
	assert.Len(t, recordOpaqueTable, 8)
}

func TestSortValues(t *testing.T) {
	t.Parallel()

	keys := reflect.ValueOf(map[any]bool{"b": true, 2: true, "a": true, 10: true, 1.5: true}).MapKeys()
	sortValues(keys)

	got := make([]any, len(keys))
	for i, k := range keys {
		got[i] = k.Interface()
	}
	assert.Equal(t, []any{1.5, 2, 10, "a", "b"}, got)
}

func TestTrackerLeave(t *testing.T) {
	t.Parallel()

	var tr tracker
	m := map[string]int{}

	leave, err := tr.enter(reflect.ValueOf(m), "$.a")
	require.NoError(t, err)

	_, err = tr.enter(reflect.ValueOf(m), "$.a.b")
	require.ErrorIs(t, err, ErrCyclicValue)
	assert.EqualError(t, err, "value refers back to itself: $.a.b refers back to $.a")

	leave()
	leave, err = tr.enter(reflect.ValueOf(&m), "$.c")
	require.NoError(t, err)
	assert.Len(t, tr.onPath, 2)
	leave()
	assert.Empty(t, tr.onPath)

	_, err = tr.enter(reflect.ValueOf(42), "$.d")
	require.NoError(t, err)
}
