package index

import (
	"context"
	"testing"

	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func el(id, name string) model.Element {
	return model.Element{ID: id, Name: name}
}

func farm() *model.System {
	return &model.System{
		ID:   "CPS1",
		Name: "Smart Farm",
		Components: []*model.Component{
			{
				Element:   el("cpc1", "Field Station"),
				Functions: []*model.Function{{Element: el("f1", "Read Moisture")}},
				Threads: []*model.Thread{
					{Element: el("t1", "Irrigate"), PeriodMS: 1000},
					{Element: el("t2", "Monitor"), PeriodMS: 250},
				},
				CommTasks:   []*model.CommTask{{Element: el("c1", "Moisture Report"), PeriodMS: 1000}},
				HwResources: []*model.HwResource{{Element: el("h1", "Probe")}},
				Relations: []*model.Relation{
					{Source: "f1", Target: "t1", Operator: "AND"},
					{Source: "t2", Target: "t1", Operator: "AND"},
					{Source: "h1", Target: "f1"},
				},
				CommRelations: []*model.CommRelation{{Source: "f1", Target: "c1"}},
			},
			{
				Element:       el("cpc2", "Pump Controller"),
				Threads:       []*model.Thread{{Element: el("t3", "Run Pump"), PeriodMS: 500}},
				ListenerTasks: []*model.ListenerTask{{Element: el("l1", "Moisture Feed"), PeriodMS: 500, PairedComponentID: "cpc1", PairedTaskID: "c1"}},
				CommRelations: []*model.CommRelation{{Source: "l1", Target: "t3"}},
			},
		},
	}
}

func TestBuild_Lookups(t *testing.T) {
	t.Parallel()

	sys := farm()
	idx, err := Build(context.Background(), sys)
	require.NoError(t, err)

	assert.Same(t, sys, idx.System())

	n, ok := idx.Lookup("t1")
	require.True(t, ok)
	assert.Equal(t, model.KindThread, n.Kind())
	assert.Same(t, sys.Components[0].Threads[0], n)

	_, ok = idx.Lookup("nope")
	assert.False(t, ok)

	owner, ok := idx.ComponentOf("l1")
	require.True(t, ok)
	assert.Equal(t, "cpc2", owner.ID)

	comp, ok := idx.Component("cpc1")
	require.True(t, ok)
	assert.Same(t, sys.Components[0], comp)

	threads := idx.Nodes("cpc1", model.KindThread)
	require.Len(t, threads, 2)
	assert.Equal(t, "t1", threads[0].NodeID())
	assert.Equal(t, "t2", threads[1].NodeID())
	assert.Empty(t, idx.Nodes("cpc2", model.KindFunction))

	assert.Len(t, idx.RelationsTo("t1"), 2)
	assert.Len(t, idx.RelationsFrom("f1"), 1)
	assert.Empty(t, idx.RelationsTo("t2"))
	assert.Equal(t, []*model.CommRelation{{Source: "f1", Target: "c1"}}, idx.CommRelationsTo("c1"))
	assert.Equal(t, []*model.CommRelation{{Source: "l1", Target: "t3"}}, idx.CommRelationsFrom("l1"))
}

func TestBuild_ValidationProblems(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		mutate      func(sys *model.System)
		expectedErr error
		errContains string
	}{
		{
			name: "duplicate node id across components",
			mutate: func(sys *model.System) {
				sys.Components[1].Threads[0].ID = "t1"
				sys.Components[1].CommRelations = nil
			},
			expectedErr: model.ErrDuplicateID,
			errContains: "thread 't1'",
		},
		{
			name: "dangling relation",
			mutate: func(sys *model.System) {
				sys.Components[0].Relations = append(sys.Components[0].Relations, &model.Relation{Source: "ghost", Target: "t1"})
			},
			expectedErr: model.ErrUnresolvedReference,
			errContains: "relation source 'ghost'",
		},
		{
			name: "comm relation across components",
			mutate: func(sys *model.System) {
				sys.Components[1].CommRelations[0].Target = "t1"
			},
			expectedErr: model.ErrUnresolvedReference,
			errContains: "comm relation target 't1'",
		},
		{
			name: "normalized name collision",
			mutate: func(sys *model.System) {
				sys.Components[0].Threads[1].Name = "read  moisture"
			},
			expectedErr: model.ErrNameCollision,
			errContains: "normalizes to 'readMoisture'",
		},
		{
			name: "blank name",
			mutate: func(sys *model.System) {
				sys.Components[0].Threads[1].Name = "   "
			},
			expectedErr: model.ErrInvalidAttribute,
			errContains: "empty identifier",
		},
		{
			name: "duplicate component name",
			mutate: func(sys *model.System) {
				sys.Components[1].Name = "Field Station"
			},
			expectedErr: model.ErrNameCollision,
			errContains: "component 'cpc2'",
		},
		{
			name: "task ids normalizing to one topic segment",
			mutate: func(sys *model.System) {
				sys.Components[0].CommTasks = append(sys.Components[0].CommTasks, &model.CommTask{Element: el("C1", "Other Report")})
			},
			expectedErr: model.ErrNameCollision,
			errContains: "topic segment 'c1', already used by comm_task 'c1'",
		},
		{
			name: "task id containing a slash",
			mutate: func(sys *model.System) {
				sys.Components[1].ListenerTasks = append(sys.Components[1].ListenerTasks, &model.ListenerTask{Element: el("a/b", "Extra Feed")})
			},
			expectedErr: model.ErrInvalidAttribute,
			errContains: "listener_task 'a/b'",
		},
		{
			name: "component ids normalizing to one topic segment",
			mutate: func(sys *model.System) {
				sys.Components[1].ID = "CPC1"
			},
			expectedErr: model.ErrNameCollision,
			errContains: "topic segment 'cpc1'",
		},
		{
			name: "component names mapping to one directory",
			mutate: func(sys *model.System) {
				sys.Components[0].Name = "Pump/Controller"
				sys.Components[1].Name = "Pump_Controller"
			},
			expectedErr: model.ErrNameCollision,
			errContains: "output directory for \"Pump_Controller\"",
		},
		{
			name: "system id containing a slash",
			mutate: func(sys *model.System) {
				sys.ID = "farm/1"
			},
			expectedErr: model.ErrInvalidAttribute,
			errContains: "system 'farm/1'",
		},
		{
			name: "paired component missing",
			mutate: func(sys *model.System) {
				sys.Components[1].ListenerTasks[0].PairedComponentID = "cpc9"
			},
			expectedErr: model.ErrUnresolvedReference,
			errContains: "paired component 'cpc9'",
		},
		{
			name: "paired task is not a comm task",
			mutate: func(sys *model.System) {
				sys.Components[1].ListenerTasks[0].PairedTaskID = "t1"
			},
			expectedErr: model.ErrUnresolvedReference,
			errContains: "paired task 't1'",
		},
		{
			name: "half pairing",
			mutate: func(sys *model.System) {
				sys.Components[1].ListenerTasks[0].PairedComponentID = ""
			},
			expectedErr: model.ErrInvalidAttribute,
			errContains: "listener_task 'l1'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sys := farm()
			tc.mutate(sys)

			_, err := Build(context.Background(), sys)
			require.Error(t, err)
			require.ErrorIs(t, err, tc.expectedErr)
			assert.Contains(t, err.Error(), tc.errContains)

			var ve *model.ValidationErrors
			require.ErrorAs(t, err, &ve)
		})
	}
}

func TestBuild_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	sys := farm()
	sys.Components[0].Relations = append(sys.Components[0].Relations, &model.Relation{Source: "x", Target: "t1"})
	sys.Components[1].ListenerTasks[0].PairedTaskID = "zzz"

	_, err := Build(context.Background(), sys)
	var ve *model.ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 2)
}

func TestBuild_UnpairedListenerIsValid(t *testing.T) {
	t.Parallel()

	sys := farm()
	sys.Components[1].ListenerTasks[0].PairedComponentID = ""
	sys.Components[1].ListenerTasks[0].PairedTaskID = ""

	_, err := Build(context.Background(), sys)
	require.NoError(t, err)
}
