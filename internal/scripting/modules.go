package scripting

import lua "github.com/yuin/gopher-lua"

// RegisterModules registers the engine table into L:
//
//	engine.rng()               -> next byte from the combat RNG
//	engine.damage(side, n)     -> queue n damage against side
//	engine.heal(side, n)       -> queue n healing for side
//	engine.reply(msg)          -> send msg to the console
//	engine.combatant(side)     -> snapshot table or nil
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetFuncs(engine, map[string]lua.LGFunction{
		"rng": func(L *lua.LState) int {
			if m.Rng == nil {
				L.Push(lua.LNumber(0))
				return 1
			}
			L.Push(lua.LNumber(m.Rng()))
			return 1
		},
		"damage": func(L *lua.LState) int {
			side, n := L.CheckString(1), L.CheckInt(2)
			if m.Damage != nil && n > 0 {
				m.Damage(side, n)
			}
			return 0
		},
		"heal": func(L *lua.LState) int {
			side, n := L.CheckString(1), L.CheckInt(2)
			if m.Heal != nil && n > 0 {
				m.Heal(side, n)
			}
			return 0
		},
		"reply": func(L *lua.LState) int {
			msg := L.CheckString(1)
			if m.Reply != nil {
				m.Reply(msg)
			}
			return 0
		},
		"combatant": func(L *lua.LState) int {
			side := L.CheckString(1)
			if m.GetCombatant == nil {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(combatantTable(L, m.GetCombatant(side)))
			return 1
		},
	})
	L.SetGlobal("engine", engine)
}
