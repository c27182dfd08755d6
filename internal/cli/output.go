package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fieldday-games/bingohunt/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.Player:
		o.printPlayer(v)
	case model.Board:
		o.printBoard(v)
	case *model.GameStatus:
		o.printGameStatus(v)
	case []model.Winner:
		o.printWinners(v)
	case []model.Task:
		o.printTasks(v)
	case []model.ScanRecord:
		o.printScans(v)
	case *model.ScanResult:
		o.printScanResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p *model.Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	if p.Phone != "" {
		fmt.Printf("Phone: %s\n", p.Phone)
	}
	if p.QRCodeURL != "" {
		fmt.Printf("QR Code: %s\n", p.QRCodeURL)
	}
}

func (o *Output) printBoard(b model.Board) {
	completed, total := b.Progress()
	fmt.Printf("Progress: %d/%d\n\n", completed, total)

	cells := b.Sorted()

	fmt.Print("   +")
	fmt.Println(strings.Repeat("-----+", model.BoardSize))
	for row := 0; row < model.BoardSize; row++ {
		fmt.Print("   |")
		for col := 0; col < model.BoardSize; col++ {
			cell := cells[row*model.BoardSize+col]
			switch {
			case cell.IsFreeSpace:
				fmt.Print("  *  |")
			case cell.Completed:
				fmt.Print("  x  |")
			default:
				fmt.Printf(" %3d |", cell.TaskID)
			}
		}
		fmt.Println()
		fmt.Print("   +")
		fmt.Println(strings.Repeat("-----+", model.BoardSize))
	}

	open := b.SelectableCells()
	if len(open) > 0 {
		fmt.Println("\nOpen tasks:")
		for _, c := range open {
			fmt.Printf("  %3d: %s\n", c.TaskID, c.Description)
		}
	}
}

func (o *Output) printGameStatus(s *model.GameStatus) {
	state := "active"
	if !s.Active {
		state = "ended"
	}
	fmt.Printf("Game: %s\n", state)
	fmt.Printf("Winners: %d/%d\n", s.WinnerCount, s.MaxWinners)
}

func (o *Output) printWinners(winners []model.Winner) {
	if len(winners) == 0 {
		fmt.Println("No winners yet")
		return
	}
	fmt.Printf("Winners (%d):\n", len(winners))
	for _, w := range winners {
		fmt.Printf("  - %s: %s", w.PlayerName, w.WinType.Label())
		if !w.WonAt.IsZero() {
			fmt.Printf(" (%s)", w.WonAt.Format("15:04:05"))
		}
		fmt.Println()
	}
}

func (o *Output) printTasks(tasks []model.Task) {
	fmt.Printf("Tasks (%d):\n", len(tasks))
	for _, t := range tasks {
		fmt.Printf("  %3d: %s\n", t.ID, t.Description)
	}
}

func (o *Output) printScans(scans []model.ScanRecord) {
	if len(scans) == 0 {
		fmt.Println("No scans yet")
		return
	}
	fmt.Printf("Scans (%d):\n", len(scans))
	for _, s := range scans {
		fmt.Printf("  - %s", s.TaskDescription)
		if s.TargetName != "" {
			fmt.Printf(" (scanned %s)", s.TargetName)
		}
		if !s.Timestamp.IsZero() {
			fmt.Printf(" at %s", s.Timestamp.Format("15:04:05"))
		}
		fmt.Println()
	}
}

func (o *Output) printScanResult(r *model.ScanResult) {
	fmt.Printf("Completed: %s\n", r.Scan.TaskDescription)
	if r.Won() {
		labels := make([]string, 0, len(r.NewWins))
		for _, w := range r.NewWins {
			labels = append(labels, w.Label())
		}
		fmt.Printf("BINGO! New wins: %s\n", strings.Join(labels, ", "))
	}
	if !r.GameActive {
		fmt.Println("The game has ended")
	}
}
