// Package stub is a self-contained game server for local development and
// demos. It implements the same wire contract the client speaks, backed by
// in-memory state.
package stub

import (
	"fmt"
	"math/rand"
	"sync"
	"unicode"

	"github.com/google/uuid"

	"github.com/fieldday-games/bingohunt/internal/dependencies/clock"
	"github.com/fieldday-games/bingohunt/internal/model"
)

// freeSpacePosition is the centre cell, completed by construction
const freeSpacePosition = 12

// StoreConfig configures a stub game
type StoreConfig struct {
	// MaxWinners is the number of distinct winners that ends the game
	MaxWinners int

	// Tasks is the task catalog. A board needs TotalCells-1 of them.
	// Defaults to the built-in catalog when empty.
	Tasks []model.Task

	// Seed fixes board generation. Zero means a random seed.
	Seed int64

	// Clock supplies scan and win timestamps
	Clock clock.Clock
}

type scanKey struct {
	scanner model.PlayerID
	taskID  int
}

type winKey struct {
	player model.PlayerID
	kind   string
}

// Store holds the in-memory game state
type Store struct {
	mu sync.RWMutex

	clock clock.Clock
	rng   *rand.Rand

	maxWinners int
	active     bool

	tasks      []model.Task
	players    map[model.PlayerID]*model.Player
	phoneIndex map[string]model.PlayerID
	boards     map[model.PlayerID]model.Board
	scans      []model.ScanRecord
	scanned    map[scanKey]bool
	winners    []model.Winner
	won        map[winKey]bool

	nextScanID   int
	nextWinnerID int
}

// NewStore creates a stub game store
func NewStore(cfg StoreConfig) *Store {
	if cfg.MaxWinners <= 0 {
		cfg.MaxWinners = 3
	}
	if len(cfg.Tasks) == 0 {
		cfg.Tasks = DefaultTasks()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	src := rand.NewSource(cfg.Seed)
	if cfg.Seed == 0 {
		src = rand.NewSource(cfg.Clock.Now().UnixNano())
	}

	return &Store{
		clock:      cfg.Clock,
		rng:        rand.New(src),
		maxWinners: cfg.MaxWinners,
		active:     true,
		tasks:      cfg.Tasks,
		players:    make(map[model.PlayerID]*model.Player),
		phoneIndex: make(map[string]model.PlayerID),
		boards:     make(map[model.PlayerID]model.Board),
		scanned:    make(map[scanKey]bool),
		won:        make(map[winKey]bool),
		nextScanID: 1,
	}
}

// Register creates a player and generates their board. Registering the same
// phone number again returns the existing player.
func (s *Store) Register(name, phone string) (*model.Player, error) {
	normalized, ok := normalizePhone(phone)
	if !ok {
		return nil, errInvalidPhone
	}
	if name == "" {
		return nil, errNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.phoneIndex[normalized]; ok {
		p := *s.players[id]
		return &p, nil
	}

	id := model.PlayerID(uuid.NewString())
	player := &model.Player{
		ID:        id,
		Name:      name,
		Phone:     normalized,
		QRCodeURL: fmt.Sprintf("/qr/%s.png", id),
		CreatedAt: s.clock.Now(),
	}

	s.players[id] = player
	s.phoneIndex[normalized] = id
	s.boards[id] = s.generateBoard()

	p := *player
	return &p, nil
}

// Player returns a player profile
func (s *Store) Player(id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

// Board returns a player's board snapshot
func (s *Store) Board(id model.PlayerID) (model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return append(model.Board(nil), board...), nil
}

// Status returns the global game status
func (s *Store) Status() model.GameStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.GameStatus{
		Active:      s.active,
		MaxWinners:  s.maxWinners,
		WinnerCount: s.distinctWinners(),
	}
}

// Winners returns the winners collection
func (s *Store) Winners() []model.Winner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Winner(nil), s.winners...)
}

// Tasks returns the task catalog
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Task(nil), s.tasks...)
}

// PlayerScans returns the scans made by a player
func (s *Store) PlayerScans(id model.PlayerID) ([]model.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.players[id]; !ok {
		return nil, model.ErrPlayerNotFound
	}
	var scans []model.ScanRecord
	for _, sc := range s.scans {
		if sc.ScannerID == id {
			scans = append(scans, sc)
		}
	}
	return scans, nil
}

// SubmitScan records a confirmed task completion and interprets it: the
// scanner's cell is marked complete, new wins are detected, and the game
// deactivates once enough distinct players have won.
func (s *Store) SubmitScan(scannerID, targetID model.PlayerID, taskID int) (*model.ScanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil, model.ErrGameEnded
	}

	scanner, ok := s.players[scannerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	target, ok := s.players[targetID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	if scannerID == targetID {
		return nil, model.ErrSelfScan
	}

	if s.scanned[scanKey{scanner: scannerID, taskID: taskID}] {
		return nil, model.ErrDuplicateScan
	}

	board := s.boards[scannerID]
	idx := -1
	for i, c := range board {
		if c.TaskID == taskID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, model.ErrTaskNotFound
	}
	if !board[idx].Selectable() {
		return nil, model.ErrDuplicateScan
	}

	board[idx].Completed = true
	s.scanned[scanKey{scanner: scannerID, taskID: taskID}] = true

	record := model.ScanRecord{
		ID:              s.nextScanID,
		ScannerID:       scannerID,
		TargetID:        targetID,
		TaskID:          taskID,
		ScannerName:     scanner.Name,
		TargetName:      target.Name,
		TaskDescription: board[idx].Description,
		Timestamp:       s.clock.Now(),
	}
	s.nextScanID++
	s.scans = append(s.scans, record)

	newWins := s.recordWins(scanner, board)

	if s.distinctWinners() >= s.maxWinners {
		s.active = false
	}

	return &model.ScanResult{
		Scan:       record,
		NewWins:    newWins,
		GameActive: s.active,
	}, nil
}

// recordWins detects completed lines on the board and records each win the
// player has not already earned
func (s *Store) recordWins(player *model.Player, board model.Board) []model.WinType {
	done := make([]bool, model.TotalCells)
	for _, c := range board {
		if c.Done() {
			done[c.Position] = true
		}
	}

	type candidate struct {
		kind    string
		winType model.WinType
	}
	var candidates []candidate

	for row := 0; row < model.BoardSize; row++ {
		complete := true
		for col := 0; col < model.BoardSize; col++ {
			if !done[row*model.BoardSize+col] {
				complete = false
				break
			}
		}
		if complete {
			candidates = append(candidates, candidate{
				kind:    fmt.Sprintf("row:%d", row),
				winType: model.WinRow,
			})
		}
	}

	for col := 0; col < model.BoardSize; col++ {
		complete := true
		for row := 0; row < model.BoardSize; row++ {
			if !done[row*model.BoardSize+col] {
				complete = false
				break
			}
		}
		if complete {
			candidates = append(candidates, candidate{
				kind:    fmt.Sprintf("column:%d", col),
				winType: model.WinColumn,
			})
		}
	}

	full := true
	for _, d := range done {
		if !d {
			full = false
			break
		}
	}
	if full {
		candidates = append(candidates, candidate{kind: "full", winType: model.WinFull})
	}

	var newWins []model.WinType
	for _, c := range candidates {
		key := winKey{player: player.ID, kind: c.kind}
		if s.won[key] {
			continue
		}
		s.won[key] = true
		s.nextWinnerID++
		s.winners = append(s.winners, model.Winner{
			ID:         s.nextWinnerID,
			PlayerID:   player.ID,
			PlayerName: player.Name,
			WinType:    c.winType,
			WonAt:      s.clock.Now(),
		})
		newWins = append(newWins, c.winType)
	}
	return newWins
}

// distinctWinners counts players holding at least one win. Callers hold the
// lock.
func (s *Store) distinctWinners() int {
	seen := make(map[model.PlayerID]bool)
	for _, w := range s.winners {
		seen[w.PlayerID] = true
	}
	return len(seen)
}

// generateBoard shuffles the catalog onto positions 0..24, leaving the free
// space at the centre. Callers hold the lock.
func (s *Store) generateBoard() model.Board {
	tasks := append([]model.Task(nil), s.tasks...)
	s.rng.Shuffle(len(tasks), func(i, j int) {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	})

	board := make(model.Board, 0, model.TotalCells)
	next := 0
	for pos := 0; pos < model.TotalCells; pos++ {
		if pos == freeSpacePosition {
			board = append(board, model.Cell{
				Description: "Free Space",
				Position:    pos,
				Completed:   true,
				IsFreeSpace: true,
			})
			continue
		}
		task := tasks[next]
		next++
		board = append(board, model.Cell{
			TaskID:      task.ID,
			Description: task.Description,
			Position:    pos,
		})
	}
	return board
}

func normalizePhone(raw string) (string, bool) {
	var digits []rune
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) != 10 {
		return "", false
	}
	return string(digits), true
}

// DefaultTasks is the built-in scavenger task catalog
func DefaultTasks() []model.Task {
	descriptions := []string{
		"Find someone wearing a hat",
		"Find someone who has a pet cat",
		"Find someone born in another country",
		"Find someone who plays an instrument",
		"Find someone who has run a marathon",
		"Find someone who speaks three languages",
		"Find someone with the same birthday month",
		"Find someone who has been skydiving",
		"Find someone who can juggle",
		"Find someone who owns a board game collection",
		"Find someone who has met a celebrity",
		"Find someone wearing the same color as you",
		"Find someone who is left-handed",
		"Find someone who has broken a bone",
		"Find someone who can whistle a tune",
		"Find someone who grew up on a farm",
		"Find someone who has been camping this year",
		"Find someone who drinks their coffee black",
		"Find someone who has a twin",
		"Find someone who can solve a Rubik's cube",
		"Find someone who has written a poem",
		"Find someone who knows how to sail",
		"Find someone who has climbed a mountain",
		"Find someone who collects something unusual",
	}

	tasks := make([]model.Task, 0, len(descriptions))
	for i, d := range descriptions {
		tasks = append(tasks, model.Task{ID: i + 1, Description: d})
	}
	return tasks
}
