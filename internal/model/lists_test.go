package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataStructure(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		raw       string
		expected  []Field
		declared  bool
		expectErr bool
	}{
		{
			name:     "absent attribute",
			raw:      "",
			declared: false,
		},
		{
			name:     "empty list",
			raw:      "[]",
			declared: true,
			expected: []Field{},
		},
		{
			name:     "full fields",
			raw:      `[{"name":"temp","type":"double","description":"Temperature"},{"name":"ok","type":"bool","description":"Ready"}]`,
			declared: true,
			expected: []Field{
				{Name: "temp", Type: "double", Description: "Temperature"},
				{Name: "ok", Type: "bool", Description: "Ready"},
			},
		},
		{
			name:     "defaults applied",
			raw:      `[{}]`,
			declared: true,
			expected: []Field{
				{Name: DefaultFieldName, Type: DefaultFieldType, Description: DefaultFieldDescription},
			},
		},
		{
			name:      "not json",
			raw:       `[{name: temp}]`,
			declared:  true,
			expectErr: true,
		},
		{
			name:      "object instead of list",
			raw:       `{"name":"temp"}`,
			declared:  true,
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ds := DecodeDataStructure(tc.raw)
			assert.Equal(t, tc.declared, ds.Declared)
			if tc.expectErr {
				require.Error(t, ds.Err)
				assert.True(t, errors.Is(ds.Err, ErrMalformedList))
				assert.False(t, ds.Valid())
				return
			}
			require.NoError(t, ds.Err)
			if diff := cmp.Diff(tc.expected, ds.Fields); tc.declared && diff != "" {
				t.Errorf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeParameters(t *testing.T) {
	t.Parallel()

	fields, err := DecodeParameters(`[{"name":"level","type":"int","description":"Target level"}]`)
	require.NoError(t, err)
	assert.Equal(t, []Field{{Name: "level", Type: "int", Description: "Target level"}}, fields)

	_, err = DecodeParameters(`[{"name":"level"}]`)
	require.ErrorIs(t, err, ErrMalformedList)

	_, err = DecodeParameters(`[1, 2]`)
	require.ErrorIs(t, err, ErrMalformedList)

	fields, err = DecodeParameters("")
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestDecodeModes(t *testing.T) {
	t.Parallel()

	modes, err := DecodeModes(`[{"code":1,"name":"Idle","description":"Waiting"},{"code":"2","name":"Run"}]`)
	require.NoError(t, err)
	expected := []Mode{
		{Code: "1", Name: "Idle", Description: "Waiting"},
		{Code: "2", Name: "Run"},
	}
	if diff := cmp.Diff(expected, modes); diff != "" {
		t.Errorf("modes mismatch (-want +got):\n%s", diff)
	}

	_, err = DecodeModes(`[{"name":"Idle"}]`)
	require.ErrorIs(t, err, ErrMalformedList)

	_, err = DecodeModes(`[{"code":{"x":1},"name":"Idle"}]`)
	require.ErrorIs(t, err, ErrMalformedList)
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("[]"))
	assert.Equal(t, []string{"Q1", "Q2"}, SplitList(" Q1 ; Q2 ;"))
}

func TestModesActive(t *testing.T) {
	t.Parallel()

	assert.False(t, Modes{Enabled: true}.Active())
	assert.False(t, Modes{List: []Mode{{Code: "1", Name: "Idle"}}}.Active())
	assert.True(t, Modes{Enabled: true, List: []Mode{{Code: "1", Name: "Idle"}}}.Active())
}

func TestRelationJoin(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		operator string
		expected Operator
	}{
		{"AND", OperatorAND},
		{" and ", OperatorAND},
		{"OR", OperatorOR},
		{"", OperatorOR},
		{"XOR", OperatorOR},
	}
	for _, tc := range testCases {
		r := &Relation{Operator: tc.operator}
		assert.Equal(t, tc.expected, r.Join(), "operator %q", tc.operator)
	}
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	var ve ValidationErrors
	require.NoError(t, ve.Err())

	ve.Add(nil)
	ve.Add(&NodeError{Kind: KindThread, ID: "t1", Err: ErrDuplicateID})
	ve.Add(Errorf(KindListenerTask, "l1", ErrUnresolvedReference, "paired task %q", "c9"))

	err := ve.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.ErrorIs(t, err, ErrUnresolvedReference)

	var nodeErr *NodeError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, "t1", nodeErr.ID)

	assert.Equal(t,
		"error: thread 't1': duplicate identifier\nerror: listener_task 'l1': unresolved reference: paired task \"c9\"\n",
		ve.FormatStderr())
}
