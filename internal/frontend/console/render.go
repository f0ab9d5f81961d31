package console

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/foresight/internal/game/combat"
	"github.com/cory-johannsen/foresight/internal/game/command"
	"github.com/cory-johannsen/foresight/internal/game/creature"
)

// RenderStatus formats both combatants, the current action, and the outcome.
func RenderStatus(s Styler, snap combat.Snapshot) string {
	var b strings.Builder
	b.WriteString(renderCreature(s, snap.Player, snap.Turn == creature.SidePlayer))
	b.WriteString("\n")
	b.WriteString(renderCreature(s, snap.Opponent, snap.Turn == creature.SideOpponent))
	if snap.Current != "" {
		b.WriteString("\n")
		b.WriteString(s.Paintf(Yellow, "Resolving %s (step %d/%d)", snap.Current, snap.Step+1, snap.Steps))
	}
	if snap.Over {
		b.WriteString("\n")
		b.WriteString(s.Paintf(BrightRed, "Combat over: %s", snap.Outcome))
	}
	return b.String()
}

func renderCreature(s Styler, st creature.Status, active bool) string {
	turn := "  "
	if active {
		turn = s.Paint(BrightYellow, "> ")
	}
	return fmt.Sprintf("%s%s %s %s %s",
		turn,
		s.Paintf(Bold, "%-12s", st.Name),
		s.Paintf(BrightGreen, "Life %d/%d", st.Life.Current, st.Life.Max),
		s.Paintf(BrightBlue, "Mana %d/%d", st.Mana.Current, st.Mana.Max),
		s.Paintf(Cyan, "AP %d/%d", st.ActionPoints.Current, st.ActionPoints.Max),
	)
}

// RenderActions lists a combatant's available actions in sorted order.
func RenderActions(s Styler, st creature.Status) string {
	if len(st.Actions) == 0 {
		return s.Paintf(Dim, "%s has no actions.", st.Name)
	}
	return s.Paintf(Green, "Actions: %s", strings.Join(st.Actions, ", "))
}

// RenderRNG formats the generator state and recent draws, oldest first.
func RenderRNG(s Styler, snap combat.Snapshot) string {
	var b strings.Builder
	b.WriteString(s.Paintf(BrightWhite, "RNG state s=%d t=%d", snap.RNGS, snap.RNGT))
	if len(snap.RNGHistory) == 0 {
		b.WriteString("\n")
		b.WriteString(s.Paint(Dim, "  no draws recorded"))
		return b.String()
	}
	for i, d := range snap.RNGHistory {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %2d  s=%-3d t=%-3d -> %s", i+1, d.S, d.T, s.Paintf(BrightCyan, "%d", d.Output)))
	}
	return b.String()
}

// RenderHelp lists commands grouped by category.
func RenderHelp(s Styler, registry *command.Registry) string {
	categories := []struct {
		name  string
		label string
	}{
		{command.CategoryCombat, "Combat"},
		{command.CategoryInfo, "Info"},
		{command.CategorySystem, "System"},
	}

	var b strings.Builder
	b.WriteString(s.Paint(BrightWhite, "Available commands:"))
	byCategory := registry.CommandsByCategory()
	for _, cat := range categories {
		cmds := byCategory[cat.name]
		if len(cmds) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(s.Paintf(BrightYellow, "  %s:", cat.label))
		for _, cmd := range cmds {
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
			}
			b.WriteString("\n")
			b.WriteString(s.Paintf(Green, "    %-10s", cmd.Name) + aliases + ": " + cmd.Help)
		}
	}
	b.WriteString("\n")
	b.WriteString(s.Paint(Dim, "  Press Enter on an empty line to advance the current action."))
	return b.String()
}

// RenderReply colors a combat reply by what it reports.
func RenderReply(s Styler, msg string) string {
	switch {
	case strings.HasSuffix(msg, "was defeated!"), strings.HasSuffix(msg, "fled from combat!"):
		return s.Paint(BrightRed, msg)
	case strings.HasSuffix(msg, "damage was dealt!"), msg == "a critical hit!":
		return s.Paint(Red, msg)
	case strings.HasSuffix(msg, "dodged the attack!"), strings.HasSuffix(msg, "fizzled!"):
		return s.Paint(Magenta, msg)
	case msg == combat.ReplyOver, msg == combat.ReplyNotYourTurn, msg == combat.ReplyPending,
		msg == combat.ReplyNoActionPoints:
		return s.Paint(Yellow, msg)
	default:
		return s.Paint(White, msg)
	}
}
