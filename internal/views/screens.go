package views

import (
	"fmt"
	"strings"
)

type ReelSlot struct {
	Title    string
	Centered bool
}

type ReelPanelData struct {
	Phase        string
	Slots        []ReelSlot
	Winner       string
	ProgressView string
	SpinnerView  string
	TaskCount    int
	CanSkip      bool
	SkipCost     int
}

type WalletPanelData struct {
	Credits  int
	Streak   int
	SkipCost int
}

type TasksPanelData struct {
	QuickAddView string
	ListView     string
	Count        int
}

type HistoryPanelData struct {
	TableView string
	Total     int
	Streak    int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

// RenderReelPanel draws the spinning reel: a vertical window of slots with
// the centered one marked, plus the phase-appropriate prompt underneath.
func RenderReelPanel(data ReelPanelData) string {
	var b strings.Builder
	b.WriteString("roulette:\n")

	switch data.Phase {
	case "Spinning":
		b.WriteString(fmt.Sprintf("spinning %s\n", data.SpinnerView))
	case "Revealed":
		b.WriteString("winner revealed\n")
	default:
		b.WriteString(fmt.Sprintf("ready | %d tasks on the wheel\n", data.TaskCount))
	}

	if len(data.Slots) == 0 {
		b.WriteString("\n(add at least two tasks to spin)\n")
	} else {
		b.WriteString("\n")
		for _, slot := range data.Slots {
			if slot.Centered {
				b.WriteString(centeredStyle.Render("> "+slot.Title) + "\n")
			} else {
				b.WriteString(dimSlotStyle.Render("  "+slot.Title) + "\n")
			}
		}
	}

	if data.Phase == "Spinning" && data.ProgressView != "" {
		b.WriteString("\n" + data.ProgressView + "\n")
	}

	if data.Phase == "Revealed" {
		b.WriteString("\n" + winnerStyle.Render("your task: "+data.Winner) + "\n")
		skip := fmt.Sprintf("[s]kip (-%d credit)", data.SkipCost)
		if !data.CanSkip {
			skip = "skip unavailable (no credits)"
		}
		b.WriteString(fmt.Sprintf("actions: [c]omplete | %s\n", skip))
	} else {
		b.WriteString("\nactions: [space]spin [1]roulette [2]tasks [3]history\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderWalletPanel(data WalletPanelData) string {
	var b strings.Builder
	b.WriteString("wallet:\n")
	b.WriteString(fmt.Sprintf("credits: %d\n", data.Credits))
	b.WriteString(fmt.Sprintf("streak: %d\n", data.Streak))
	b.WriteString(fmt.Sprintf("skip cost: %d\n", data.SkipCost))
	return strings.TrimSpace(b.String())
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(data.QuickAddView + "\n")
	b.WriteString(fmt.Sprintf("actions: [enter]add [j/k]move [d]remove | %d on the wheel\n", data.Count))
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString("history:\n")
	b.WriteString(fmt.Sprintf("completed: %d | streak: %d\n", data.Total, data.Streak))
	b.WriteString("actions: [C]clear history\n")
	if data.Total == 0 {
		b.WriteString("(nothing completed yet)")
	} else {
		b.WriteString(data.TableView)
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

// RenderHelpPanel renders the key reference as markdown so headings and
// code spans get terminal styling.
func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("# Help\n\n")
	b.WriteString(fmt.Sprintf("**%s view**\n\n", data.CurrentView))
	for _, binding := range data.Bindings {
		b.WriteString("- `" + binding + "`\n")
	}
	out := RenderMarkdown(b.String())
	if data.HelpView != "" {
		out += "\n" + data.HelpView
	}
	return out
}
