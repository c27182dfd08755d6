package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/fieldday-games/bingohunt/internal/model"
)

// Terminal renders screens as plain text and reads user input line by line.
// It implements both Presenter and Input.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer

	lines   chan string
	readErr error
	once    sync.Once
	in      io.Reader

	chrome Chrome
}

var (
	_ Presenter = (*Terminal)(nil)
	_ Input     = (*Terminal)(nil)
)

// NewTerminal creates a terminal UI reading from in and writing to out
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		lines:  make(chan string),
		chrome: DefaultChrome,
	}
}

// ReadLine returns the next input line, or the context error if cancelled.
// The underlying reader is pumped by a single goroutine so concurrent
// callers never interleave partial reads.
func (t *Terminal) ReadLine(ctx context.Context) (string, error) {
	t.once.Do(func() {
		go func() {
			scanner := bufio.NewScanner(t.in)
			for scanner.Scan() {
				t.lines <- scanner.Text()
			}
			t.readErr = scanner.Err()
			if t.readErr == nil {
				t.readErr = io.EOF
			}
			close(t.lines)
		}()
	})

	select {
	case line, ok := <-t.lines:
		if !ok {
			return "", t.readErr
		}
		return strings.TrimSpace(line), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (t *Terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) ShowToast(level ToastLevel, message string) {
	switch level {
	case ToastError:
		t.printf("\n!! %s\n", message)
	case ToastSuccess:
		t.printf("\n** %s\n", message)
	default:
		t.printf("\n-- %s\n", message)
	}
}

func (t *Terminal) SetChrome(c Chrome) {
	t.mu.Lock()
	changed := c != t.chrome
	t.chrome = c
	out := t.out
	t.mu.Unlock()

	if changed && c.Header {
		fmt.Fprintln(out, strings.Repeat("=", 40))
		fmt.Fprintln(out, " BingoHunt")
		fmt.Fprintln(out, strings.Repeat("=", 40))
	}
}

func (t *Terminal) ShowLoading() {
	t.printf("Loading...\n")
}

func (t *Terminal) ShowBoard(v BoardView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "\n%s's board - %d / %d complete\n\n", v.PlayerName, v.Completed, v.Total)

	// Grid of position markers: completed cells show x, the free space *,
	// open cells their task number
	fmt.Fprint(t.out, "   +")
	for col := 0; col < model.BoardSize; col++ {
		fmt.Fprint(t.out, "-----")
	}
	fmt.Fprintln(t.out, "+")

	for row := 0; row < model.BoardSize; row++ {
		fmt.Fprint(t.out, "   |")
		for col := 0; col < model.BoardSize; col++ {
			idx := row*model.BoardSize + col
			if idx >= len(v.Cells) {
				fmt.Fprint(t.out, "  ?  ")
				continue
			}
			cell := v.Cells[idx]
			switch {
			case cell.IsFreeSpace:
				fmt.Fprint(t.out, "  *  ")
			case cell.Completed:
				fmt.Fprint(t.out, "  x  ")
			default:
				fmt.Fprintf(t.out, " %3d ", cell.TaskID)
			}
		}
		fmt.Fprintln(t.out, "|")
	}

	fmt.Fprint(t.out, "   +")
	for col := 0; col < model.BoardSize; col++ {
		fmt.Fprint(t.out, "-----")
	}
	fmt.Fprintln(t.out, "+")

	fmt.Fprintln(t.out, "\nOpen tasks:")
	for _, cell := range v.Cells {
		if cell.Selectable() {
			fmt.Fprintf(t.out, "  %3d) %s\n", cell.TaskID, cell.Description)
		}
	}
	fmt.Fprintln(t.out, "\nEnter a task number to scan for it, or press enter to refresh.")
}

func (t *Terminal) ShowScanPrompt(taskDescription string) {
	t.printf("\nScanning for: %s\nEnter the player's code (or blank to cancel):\n", taskDescription)
}

func (t *Terminal) ShowCameraError(message string) {
	t.printf("\nScanner unavailable\n%s\nPress enter to return to the board.\n", message)
}

func (t *Terminal) ShowConfirm(v ConfirmView) {
	t.printf("\nYou scanned %s\nSelected task: %s\nConfirm? [y/N]\n", v.TargetName, v.TaskDescription)
}

func (t *Terminal) ShowResultCard(v ResultCard) {
	t.mu.Lock()
	fmt.Fprintf(t.out, "\n%s\n%s\n", v.Title, v.Message)
	switch {
	case v.CanRetry:
		fmt.Fprintln(t.out, "[t] try again  [b] back to board")
	default:
		fmt.Fprintln(t.out, "Press enter to go back to the board.")
	}
	t.mu.Unlock()

	if v.Confetti {
		t.confetti()
	}
}

func (t *Terminal) ShowErrorCard(v ErrorCard) {
	t.printf("\n%s\n%s\n[r] try again  [enter] back to board\n", v.Title, v.Message)
}

func (t *Terminal) ShowWinnersOverlay(winners []model.Winner) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, "\nThe game has ended! Winners:")
	for _, w := range winners {
		fmt.Fprintf(t.out, "  %s - %s\n", w.PlayerName, w.WinType.Label())
	}
	fmt.Fprintln(t.out, "Press enter to see the final summary.")
}

func (t *Terminal) ShowGameOver(v GameOverView) {
	t.mu.Lock()
	if v.IsWinner {
		fmt.Fprintln(t.out, "\nYou won! Congratulations!")
	} else {
		fmt.Fprintln(t.out, "\nGame over. Thanks for playing!")
	}
	if len(v.Winners) == 0 {
		fmt.Fprintln(t.out, "No winners recorded.")
	} else {
		fmt.Fprintln(t.out, "Winners:")
		for _, w := range v.Winners {
			marker := " "
			if w.PlayerID == v.SelfID {
				marker = ">"
			}
			fmt.Fprintf(t.out, " %s %s - %s\n", marker, w.PlayerName, w.WinType.Label())
		}
	}
	fmt.Fprintln(t.out, "Press enter to view your board.")
	t.mu.Unlock()

	if v.IsWinner {
		t.confetti()
	}
}

func (t *Terminal) ShowSignupForm() {
	t.printf("\nWelcome to BingoHunt!\nRegister to get your board.\n")
}

func (t *Terminal) ShowQRCode(id model.PlayerID) {
	qr, err := qrcode.New(string(id), qrcode.Medium)
	if err != nil {
		t.printf("Your player code: %s\n", id)
		return
	}
	t.printf("\nYour code - let other players scan it:\n%s\nID: %s\n", qr.ToSmallString(false), id)
}

var confettiGlyphs = []rune{'*', '+', '.', 'o', '~'}

// confetti is decoration only
func (t *Terminal) confetti() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < 3; i++ {
		var line strings.Builder
		for j := 0; j < 40; j++ {
			if rand.Intn(3) == 0 {
				line.WriteRune(confettiGlyphs[rand.Intn(len(confettiGlyphs))])
			} else {
				line.WriteByte(' ')
			}
		}
		fmt.Fprintln(t.out, line.String())
	}
}
