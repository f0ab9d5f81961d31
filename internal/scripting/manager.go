package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// CombatantInfo is a snapshot of a combatant passed to Lua hooks.
type CombatantInfo struct {
	Side    string
	Name    string
	Life    int
	MaxLife int
	Mana    int
	MaxMana int
}

// Manager owns one sandboxed LState holding every loaded action script.
//
// Manager is not safe for concurrent use; the combat loop is its only caller.
type Manager struct {
	state     *lua.LState
	instLimit int
	logger    *zap.Logger

	// Injected after construction. nil = no-op in engine.* functions.
	Rng          func() byte
	Damage       func(side string, amount int)
	Heal         func(side string, amount int)
	Reply        func(msg string)
	GetCombatant func(side string) *CombatantInfo
}

// NewManager creates a Manager with an empty sandboxed VM.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Manager whose VM has the engine module registered.
func NewManager(logger *zap.Logger, instLimit int) *Manager {
	m := &Manager{
		state:     NewSandboxedState(),
		instLimit: instLimit,
		logger:    logger,
	}
	m.RegisterModules(m.state)
	return m
}

// Load executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Hooks defined by the scripts are callable; returns error on the first load failure.
func (m *Manager) Load(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		err := withLimit(m.state, m.instLimit, func() error { return m.state.DoFile(path) })
		if err != nil {
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
		m.logger.Debug("scripting: loaded script", zap.String("path", path))
	}
	return nil
}

// HasHook reports whether a global function named hook is defined.
func (m *Manager) HasHook(hook string) bool {
	_, ok := m.state.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// CallHook calls the named Lua global function. Returns (LNil, nil) when the
// hook is not defined. Lua runtime errors, including exhausting the
// instruction limit, are logged at Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	L := m.state
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	err := withLimit(L, m.instLimit, func() error {
		return L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// CallStep invokes hook(actor, target) with combatant snapshots as tables.
//
// Precondition: actor and target must be non-nil.
// Postcondition: Returns the hook's first return value, or LNil.
func (m *Manager) CallStep(hook string, actor, target *CombatantInfo) (lua.LValue, error) {
	return m.CallHook(hook, combatantTable(m.state, actor), combatantTable(m.state, target))
}

// Close releases the VM.
func (m *Manager) Close() {
	m.state.Close()
}

func combatantTable(L *lua.LState, c *CombatantInfo) lua.LValue {
	if c == nil {
		return lua.LNil
	}
	t := L.NewTable()
	L.SetField(t, "side", lua.LString(c.Side))
	L.SetField(t, "name", lua.LString(c.Name))
	L.SetField(t, "life", lua.LNumber(c.Life))
	L.SetField(t, "max_life", lua.LNumber(c.MaxLife))
	L.SetField(t, "mana", lua.LNumber(c.Mana))
	L.SetField(t, "max_mana", lua.LNumber(c.MaxMana))
	return t
}
