// Package command provides the console command registry, parser, and built-in command definitions.
package command

import "strings"

// Categories for organizing commands.
const (
	CategoryCombat = "combat"
	CategoryInfo   = "info"
	CategorySystem = "system"
)

// Handler identifiers mapping commands to console behaviour.
const (
	HandlerAction  = "action"
	HandlerNext    = "next"
	HandlerStatus  = "status"
	HandlerActions = "actions"
	HandlerRNG     = "rng"
	HandlerLog     = "log"
	HandlerHelp    = "help"
	HandlerQuit    = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (combat, info, system).
	Category string
	// Handler selects the console behaviour.
	Handler string
	// Action is the combat action started by HandlerAction commands.
	Action string
}

// BuiltinCommands returns all built-in commands.
func BuiltinCommands() []Command {
	return []Command{
		// Combat commands
		{Name: "attack", Aliases: []string{"att"}, Help: "Attack the opponent", Category: CategoryCombat, Handler: HandlerAction, Action: "Attack"},
		{Name: "firebolt", Aliases: []string{"fb"}, Help: "Hurl a firebolt (10 mana)", Category: CategoryCombat, Handler: HandlerAction, Action: "Firebolt"},
		{Name: "flee", Aliases: []string{"run"}, Help: "Attempt to flee combat", Category: CategoryCombat, Handler: HandlerAction, Action: "Flee"},
		{Name: "pass", Aliases: []string{"p"}, Help: "Forfeit your remaining action points", Category: CategoryCombat, Handler: HandlerAction, Action: "Pass"},
		{Name: "next", Aliases: []string{"n"}, Help: "Advance the current action one step (or press Enter)", Category: CategoryCombat, Handler: HandlerNext},

		// Info commands
		{Name: "status", Aliases: []string{"st"}, Help: "Show life, mana, and action points", Category: CategoryInfo, Handler: HandlerStatus},
		{Name: "actions", Aliases: []string{"acts"}, Help: "List your available actions", Category: CategoryInfo, Handler: HandlerActions},
		{Name: "rng", Aliases: nil, Help: "Inspect the random stream state and recent draws", Category: CategoryInfo, Handler: HandlerRNG},

		// System commands
		{Name: "log", Aliases: nil, Help: "Print a message (log <msg> [num])", Category: CategorySystem, Handler: HandlerLog},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}

// ActionCommands returns a combat command for every action name not already
// started by a built-in command. Command names are the lowercased action names.
func ActionCommands(actionNames []string) []Command {
	covered := make(map[string]bool)
	for _, c := range BuiltinCommands() {
		if c.Handler == HandlerAction {
			covered[c.Action] = true
		}
	}
	var out []Command
	for _, name := range actionNames {
		if covered[name] {
			continue
		}
		out = append(out, Command{
			Name:     strings.ToLower(name),
			Help:     "Use " + name,
			Category: CategoryCombat,
			Handler:  HandlerAction,
			Action:   name,
		})
	}
	return out
}
