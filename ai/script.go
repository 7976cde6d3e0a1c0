package ai

import (
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

// The script defines decide(situation) returning a behavior name.
const decideDispatchScript = `
__behavior = decide(__situation)
`

// ScriptPolicy runs a tengo decide function. Script errors and unknown
// results fall back to DefaultPolicy.
type ScriptPolicy struct {
	mu       sync.Mutex
	compiled *tengo.Compiled
	fallback Policy
	log      *zap.Logger
}

func NewScriptPolicy(src []byte, log *zap.Logger) (*ScriptPolicy, error) {
	if log == nil {
		log = zap.NewNop()
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + decideDispatchScript))
	_ = script.Add("__situation", map[string]any{})
	_ = script.Add("__behavior", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile script: %w", err)
	}
	return &ScriptPolicy{compiled: compiled, fallback: DefaultPolicy{}, log: log}, nil
}

func (p *ScriptPolicy) Decide(s Situation, prof Profile, roll float64) Behavior {
	p.mu.Lock()
	defer p.mu.Unlock()

	situation := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"distance":           &tengo.Float{Value: s.Distance},
		"opponent_attacking": boolObject(s.OpponentAttacking),
		"self_health":        &tengo.Float{Value: s.SelfHealth},
		"opponent_health":    &tengo.Float{Value: s.OpponentHealth},
		"roll":               &tengo.Float{Value: roll},
		"block_chance":       &tengo.Float{Value: prof.BlockChance},
		"chase_chance":       &tengo.Float{Value: prof.ChaseChance},
		"power_chance":       &tengo.Float{Value: prof.PowerChance},
		"attack_range":       &tengo.Float{Value: AttackRange},
		"threat_range":       &tengo.Float{Value: ThreatRange},
	}}
	if err := p.compiled.Set("__situation", situation); err != nil {
		p.log.Warn("ai script input", zap.Error(err))
		return p.fallback.Decide(s, prof, roll)
	}
	if err := p.compiled.Run(); err != nil {
		p.log.Warn("ai script run", zap.Error(err))
		return p.fallback.Decide(s, prof, roll)
	}
	name := strings.TrimSpace(p.compiled.Get("__behavior").String())
	b, ok := ParseBehavior(name)
	if !ok {
		p.log.Warn("ai script returned unknown behavior", zap.String("behavior", name))
		return p.fallback.Decide(s, prof, roll)
	}
	return b
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
