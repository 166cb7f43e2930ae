package game

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pefman/duel-defense/internal/defense"
)

var (
	ErrAlreadyPrepared = errors.New("test already prepared")
	ErrNotPrepared     = errors.New("test not prepared")
	ErrAlreadyResolved = errors.New("test already resolved")
	ErrUnknownDefense  = errors.New("defense not available")
	ErrDefenseDisabled = errors.New("defense disabled")
	ErrDefenseChosen   = errors.New("active defense already chosen")
	ErrNilTest         = errors.New("nil test")
)

// OpposedTest is the attacker-vs-defender base shared by contested tests. It
// owns the lifecycle flags and the hooks that run once preparation is done.
type OpposedTest struct {
	ID      string
	Actor   defense.Actor // defender; may be nil
	Against *AttackResult // attacker result; may be nil until bound

	log        *zap.Logger
	prepared   bool
	resolved   bool
	onPrepared []func()
}

func newOpposedTest(actor defense.Actor, against *AttackResult) OpposedTest {
	return OpposedTest{
		ID:      uuid.NewString(),
		Actor:   actor,
		Against: against,
		log:     zap.NewNop(),
	}
}

// OnPrepared registers fn to run at the end of preparation, after the test's
// own data is in place.
func (t *OpposedTest) OnPrepared(fn func()) {
	t.onPrepared = append(t.onPrepared, fn)
}

func (t *OpposedTest) Prepared() bool { return t.prepared }
func (t *OpposedTest) Resolved() bool { return t.resolved }

// AttackItem is the attacking weapon or spell, nil when none is bound.
func (t *OpposedTest) AttackItem() defense.Item {
	if t.Against == nil {
		return nil
	}
	return t.Against.Item
}

// AttackerHits is zero when no attacker result is bound.
func (t *OpposedTest) AttackerHits() int {
	if t.Against == nil {
		return 0
	}
	return t.Against.Hits
}

func (t *OpposedTest) prepareDocumentData() {
	t.prepared = true
	for _, fn := range t.onPrepared {
		fn()
	}
}

// evaluate compares defender hits against the attacker's. Ties go to the defender.
func (t *OpposedTest) evaluate(defenderHits int) (netHits int, success bool, err error) {
	if !t.prepared {
		return 0, false, ErrNotPrepared
	}
	if t.resolved {
		return 0, false, ErrAlreadyResolved
	}
	t.resolved = true
	netHits = t.AttackerHits() - defenderHits
	return netHits, netHits <= 0, nil
}
