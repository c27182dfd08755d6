package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fieldday-games/bingohunt/internal/model"
	"github.com/fieldday-games/bingohunt/internal/scan"
	"github.com/fieldday-games/bingohunt/internal/ui"
)

const (
	selfID   = model.PlayerID("11111111-1111-4111-8111-111111111111")
	targetID = model.PlayerID("22222222-2222-4222-8222-222222222222")
)

// testBoardCells builds a valid 25-cell board with the free space completed
// at the centre position
func testBoardCells() model.Board {
	cells := make(model.Board, 0, model.TotalCells)
	for pos := 0; pos < model.TotalCells; pos++ {
		cell := model.Cell{
			TaskID:      pos + 1,
			Description: fmt.Sprintf("Task %d", pos+1),
			Position:    pos,
		}
		if pos == 12 {
			cell.IsFreeSpace = true
			cell.Completed = true
		}
		cells = append(cells, cell)
	}
	return cells
}

type fakeAPI struct {
	mu sync.Mutex

	players map[model.PlayerID]*model.Player
	board   model.Board
	status  model.GameStatus
	winners []model.Winner
	tasks   []model.Task
	scans   []model.ScanRecord

	registerPlayer *model.Player
	scanResult     model.ScanResult

	playerErr error
	boardErr  error
	statusErr error
	scanErr   error

	registerCalls int
	playerCalls   int
	boardCalls    int
	statusCalls   int
	submitCalls   int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		players: map[model.PlayerID]*model.Player{
			selfID:   {ID: selfID, Name: "Alice"},
			targetID: {ID: targetID, Name: "Bob"},
		},
		board:  testBoardCells(),
		status: model.GameStatus{Active: true, MaxWinners: 3},
		scanResult: model.ScanResult{
			Scan:       model.ScanRecord{ID: 1, ScannerID: selfID, TargetID: targetID},
			GameActive: true,
		},
	}
}

func (f *fakeAPI) Register(_ context.Context, name, phone string) (*model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	p := f.registerPlayer
	if p == nil {
		p = &model.Player{ID: selfID, Name: name, Phone: phone}
	}
	out := *p
	return &out, nil
}

func (f *fakeAPI) GetPlayer(_ context.Context, id model.PlayerID) (*model.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playerCalls++
	if f.playerErr != nil {
		return nil, f.playerErr
	}
	p, ok := f.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeAPI) GetBoard(_ context.Context, _ model.PlayerID) (model.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boardCalls++
	if f.boardErr != nil {
		return nil, f.boardErr
	}
	return append(model.Board(nil), f.board...), nil
}

func (f *fakeAPI) GetGameState(_ context.Context) (*model.GameStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	st := f.status
	return &st, nil
}

func (f *fakeAPI) GetWinners(_ context.Context) ([]model.Winner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Winner(nil), f.winners...), nil
}

func (f *fakeAPI) GetTasks(_ context.Context) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Task(nil), f.tasks...), nil
}

func (f *fakeAPI) GetPlayerScans(_ context.Context, _ model.PlayerID) ([]model.ScanRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ScanRecord(nil), f.scans...), nil
}

func (f *fakeAPI) SubmitScan(_ context.Context, _, _ model.PlayerID, taskID int) (*model.ScanResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	res := f.scanResult
	res.Scan.TaskID = taskID
	return &res, nil
}

func (f *fakeAPI) setStatus(st model.GameStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = st
}

func (f *fakeAPI) markCompleted(taskID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.board {
		if f.board[i].TaskID == taskID {
			f.board[i].Completed = true
		}
	}
}

func (f *fakeAPI) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitCalls
}

func (f *fakeAPI) registerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registerCalls
}

type toast struct {
	level   ui.ToastLevel
	message string
}

// fakePresenter records every rendering call for later assertion
type fakePresenter struct {
	mu sync.Mutex

	toasts       []toast
	chromes      []ui.Chrome
	loading      int
	boards       []ui.BoardView
	scanPrompts  []string
	cameraErrors []string
	confirms     []ui.ConfirmView
	results      []ui.ResultCard
	errorCards   []ui.ErrorCard
	overlays     [][]model.Winner
	gameOvers    []ui.GameOverView
	signupForms  int
	qrCodes      []model.PlayerID
}

func (p *fakePresenter) ShowToast(level ui.ToastLevel, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.toasts = append(p.toasts, toast{level: level, message: message})
}

func (p *fakePresenter) SetChrome(c ui.Chrome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chromes = append(p.chromes, c)
}

func (p *fakePresenter) ShowLoading() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading++
}

func (p *fakePresenter) ShowBoard(v ui.BoardView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.boards = append(p.boards, v)
}

func (p *fakePresenter) ShowScanPrompt(taskDescription string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scanPrompts = append(p.scanPrompts, taskDescription)
}

func (p *fakePresenter) ShowCameraError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cameraErrors = append(p.cameraErrors, message)
}

func (p *fakePresenter) ShowConfirm(v ui.ConfirmView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms = append(p.confirms, v)
}

func (p *fakePresenter) ShowResultCard(v ui.ResultCard) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, v)
}

func (p *fakePresenter) ShowErrorCard(v ui.ErrorCard) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errorCards = append(p.errorCards, v)
}

func (p *fakePresenter) ShowWinnersOverlay(winners []model.Winner) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overlays = append(p.overlays, winners)
}

func (p *fakePresenter) ShowGameOver(v ui.GameOverView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameOvers = append(p.gameOvers, v)
}

func (p *fakePresenter) ShowSignupForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signupForms++
}

func (p *fakePresenter) ShowQRCode(id model.PlayerID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.qrCodes = append(p.qrCodes, id)
}

func (p *fakePresenter) toastList() []toast {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]toast(nil), p.toasts...)
}

func (p *fakePresenter) hasToast(level ui.ToastLevel, message string) bool {
	for _, t := range p.toastList() {
		if t.level == level && t.message == message {
			return true
		}
	}
	return false
}

func (p *fakePresenter) boardCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.boards)
}

func (p *fakePresenter) scanPromptList() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.scanPrompts...)
}

func (p *fakePresenter) cameraErrorCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cameraErrors)
}

func (p *fakePresenter) confirmList() []ui.ConfirmView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ui.ConfirmView(nil), p.confirms...)
}

func (p *fakePresenter) resultList() []ui.ResultCard {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ui.ResultCard(nil), p.results...)
}

func (p *fakePresenter) errorCardList() []ui.ErrorCard {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ui.ErrorCard(nil), p.errorCards...)
}

func (p *fakePresenter) overlayCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.overlays)
}

func (p *fakePresenter) gameOverList() []ui.GameOverView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ui.GameOverView(nil), p.gameOvers...)
}

func (p *fakePresenter) signupFormCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signupForms
}

func (p *fakePresenter) qrCodeList() []model.PlayerID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.PlayerID(nil), p.qrCodes...)
}

func (p *fakePresenter) lastChrome() (ui.Chrome, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.chromes) == 0 {
		return ui.Chrome{}, false
	}
	return p.chromes[len(p.chromes)-1], true
}

// scriptedInput queues lines for screens to consume. A reader whose context
// is cancelled never consumes a queued line, so lines typed after a
// transition always reach the active screen.
type scriptedInput struct {
	mu    sync.Mutex
	queue []string
}

func (i *scriptedInput) Type(lines ...string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.queue = append(i.queue, lines...)
}

func (i *scriptedInput) ReadLine(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		i.mu.Lock()
		if len(i.queue) > 0 {
			line := i.queue[0]
			i.queue = i.queue[1:]
			i.mu.Unlock()
			return line, nil
		}
		i.mu.Unlock()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

// fakeCapability emulates a single-decode scan session
type fakeCapability struct {
	mu       sync.Mutex
	onDecode func(code string)
	startErr error
	starts   int
	stops    int
}

func (c *fakeCapability) Start(_ context.Context, onDecode func(code string)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.startErr != nil {
		return c.startErr
	}
	if c.onDecode != nil {
		return scan.ErrUnavailable
	}
	c.onDecode = onDecode
	c.starts++
	return nil
}

func (c *fakeCapability) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.onDecode != nil {
		c.onDecode = nil
		c.stops++
	}
}

// Decode delivers one decoded code to the active session, if any
func (c *fakeCapability) Decode(code string) {
	c.mu.Lock()
	cb := c.onDecode
	c.onDecode = nil
	c.mu.Unlock()
	if cb != nil {
		cb(code)
	}
}

func (c *fakeCapability) active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onDecode != nil
}

func (c *fakeCapability) startCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.starts
}

func (c *fakeCapability) stopCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stops
}
