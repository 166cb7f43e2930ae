package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareAll(t *testing.T) {
	tests := make([]*DefenseTest, 20)
	for i := range tests {
		tests[i] = NewDefenseTest(defender(), swordAttack())
	}

	require.NoError(t, PrepareAll(context.Background(), tests, 4))

	for _, tt := range tests {
		assert.True(t, tt.Prepared())
		assert.Len(t, tt.Data.PassiveDefenses, 3)
		assert.Len(t, tt.Data.ActiveDefenses, 3)
	}
}

func TestPrepareAllReportsAlreadyPrepared(t *testing.T) {
	done := NewDefenseTest(defender(), swordAttack(), WithID("done"))
	require.NoError(t, done.Prepare())

	err := PrepareAll(context.Background(), []*DefenseTest{done}, 0)
	assert.ErrorIs(t, err, ErrAlreadyPrepared)
	assert.ErrorContains(t, err, "prepare done")
}

func TestPrepareAllRejectsNilEntry(t *testing.T) {
	first := NewDefenseTest(defender(), swordAttack())
	err := PrepareAll(context.Background(), []*DefenseTest{first, nil}, 2)

	assert.ErrorIs(t, err, ErrNilTest)
	assert.ErrorContains(t, err, "prepare #1")
	assert.False(t, first.Prepared())
}

func TestPrepareAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	test := NewDefenseTest(defender(), swordAttack())
	err := PrepareAll(ctx, []*DefenseTest{test}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, test.Prepared())
}
