package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pefman/duel-defense/internal/defense"
)

// DefenseData is the working data of a defense test.
type DefenseData struct {
	// IncomingDamage is the attack's damage as it arrived; never modified.
	IncomingDamage Damage `json:"incomingDamage"`
	// ModifiedDamage is the damage after this defense, success or failure.
	ModifiedDamage Damage `json:"modifiedDamage"`

	PassiveDefense  defense.Key `json:"passiveDefense,omitempty"`
	PassiveDefenses defense.Set `json:"passiveDefenses"`
	ActiveDefense   defense.Key `json:"activeDefense,omitempty"`
	ActiveDefenses  defense.Set `json:"activeDefenses"`

	// IniMod is set when the test changes the defender's initiative. Unset and
	// zero are different states.
	IniMod *int `json:"iniMod,omitempty"`
}

// DefenseTest is the defender's side of a contested test.
type DefenseTest struct {
	OpposedTest
	Data DefenseData

	rules defense.Config
}

type TestOption func(*DefenseTest)

func WithLogger(l *zap.Logger) TestOption {
	return func(t *DefenseTest) {
		if l != nil {
			t.log = l
		}
	}
}

// WithRules sets the rule switches used by the catalogs.
func WithRules(c defense.Config) TestOption {
	return func(t *DefenseTest) { t.rules = c }
}

func WithID(id string) TestOption {
	return func(t *DefenseTest) {
		if id != "" {
			t.ID = id
		}
	}
}

// NewDefenseTest binds a defender to an attacker result. Either may be nil.
func NewDefenseTest(actor defense.Actor, against *AttackResult, opts ...TestOption) *DefenseTest {
	t := &DefenseTest{OpposedTest: newOpposedTest(actor, against)}
	for _, o := range opts {
		o(t)
	}
	t.OnPrepared(t.prepareActiveDefense)
	return t
}

// Prepare snapshots the incoming damage and derives the defense sets. It runs
// once per test. Passive defenses are in place before any OnPrepared hook runs.
func (t *DefenseTest) Prepare() error {
	if t.prepared {
		return ErrAlreadyPrepared
	}
	t.prepareData()
	t.PreparePassiveDefense()
	t.prepareDocumentData()

	t.log.Debug("defense test prepared",
		zap.String("test_id", t.ID),
		zap.Int("incoming_damage", t.Data.IncomingDamage.Value),
		zap.Int("passive_defenses", len(t.Data.PassiveDefenses)),
		zap.Int("active_defenses", len(t.Data.ActiveDefenses)),
	)
	return nil
}

func (t *DefenseTest) prepareData() {
	damage := DefaultDamage()
	if t.Against != nil {
		damage = t.Against.Damage
	}
	t.Data.IncomingDamage = damage.Clone()
	t.Data.ModifiedDamage = damage.Clone()
}

// PreparePassiveDefense fills the passive defenses. Without a defender or an
// attacking item it leaves them untouched.
func (t *DefenseTest) PreparePassiveDefense() {
	if t.Actor == nil {
		return
	}
	weapon := t.AttackItem()
	if weapon == nil {
		return
	}
	t.Data.PassiveDefenses = t.rules.PassiveDefenses(weapon, t.Actor)
}

func (t *DefenseTest) prepareActiveDefense() {
	if t.Actor == nil {
		return
	}
	weapon := t.AttackItem()
	if weapon == nil {
		return
	}
	t.Data.ActiveDefenses = t.rules.ActiveDefenses(weapon, t.Actor)
}

func (t *DefenseTest) SuccessLabel() defense.Label { return defense.LabelAttackDodged }
func (t *DefenseTest) FailureLabel() defense.Label { return defense.LabelAttackHits }
func (t *DefenseTest) Categories() []Category      { return []Category{CategoryDefense} }

// HasChangedInitiative reports whether this test recorded an initiative modifier.
func (t *DefenseTest) HasChangedInitiative() bool {
	return t.Data.IniMod != nil
}

func (t *DefenseTest) InitiativeModifier() int {
	if t.Data.IniMod == nil {
		return 0
	}
	return *t.Data.IniMod
}

func (t *DefenseTest) SetInitiativeModifier(v int) {
	t.Data.IniMod = &v
}

// UseActiveDefense records key as the chosen active defense and charges its
// initiative cost, if any.
func (t *DefenseTest) UseActiveDefense(key defense.Key) error {
	o, err := t.lookup(t.Data.ActiveDefenses, key)
	if err != nil {
		return err
	}
	if t.Data.ActiveDefense != "" {
		return fmt.Errorf("%w: %s", ErrDefenseChosen, t.Data.ActiveDefense)
	}
	t.Data.ActiveDefense = key
	if o.InitiativeCost != 0 {
		t.SetInitiativeModifier(o.InitiativeCost)
	}
	return nil
}

// UsePassiveDefense records key as the passive defense rolled against.
func (t *DefenseTest) UsePassiveDefense(key defense.Key) error {
	if _, err := t.lookup(t.Data.PassiveDefenses, key); err != nil {
		return err
	}
	t.Data.PassiveDefense = key
	return nil
}

func (t *DefenseTest) lookup(set defense.Set, key defense.Key) (defense.Option, error) {
	if !t.prepared {
		return defense.Option{}, ErrNotPrepared
	}
	o, ok := set.Get(key)
	if !ok {
		return defense.Option{}, fmt.Errorf("%w: %s", ErrUnknownDefense, key)
	}
	if !o.Usable() {
		return defense.Option{}, fmt.Errorf("%w: %s", ErrDefenseDisabled, key)
	}
	return o, nil
}

// Resolve settles the test with the defender's hits. On failure the remaining
// net hits are added to the modified damage; the incoming damage is untouched.
func (t *DefenseTest) Resolve(defenderHits int) (Outcome, error) {
	net, success, err := t.evaluate(defenderHits)
	if err != nil {
		return Outcome{}, err
	}
	label := t.SuccessLabel()
	if !success {
		label = t.FailureLabel()
		t.Data.ModifiedDamage.AddMod("net_hits", net)
	}

	out := Outcome{
		TestID:               t.ID,
		Success:              success,
		Label:                label,
		AttackerHits:         t.AttackerHits(),
		DefenderHits:         defenderHits,
		NetHits:              net,
		ActiveDefense:        t.Data.ActiveDefense,
		PassiveDefense:       t.Data.PassiveDefense,
		IncomingDamage:       t.Data.IncomingDamage.Clone(),
		ModifiedDamage:       t.Data.ModifiedDamage.Clone(),
		HasChangedInitiative: t.HasChangedInitiative(),
		InitiativeModifier:   t.InitiativeModifier(),
		Categories:           t.Categories(),
	}
	if t.Against != nil {
		out.AttackerID = t.Against.ActorID
	}
	if id, ok := t.Actor.(interface{ Identifier() string }); ok {
		out.DefenderID = id.Identifier()
	}

	t.log.Debug("defense test resolved",
		zap.String("test_id", t.ID),
		zap.Bool("success", success),
		zap.Int("net_hits", net),
		zap.Int("modified_damage", out.ModifiedDamage.Value),
	)
	return out, nil
}
