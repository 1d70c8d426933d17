package shift

import (
	"context"
	"log"
	"sync"
	"time"

	"thepass/internal/evaluation"
	"thepass/internal/kitchen"
	"thepass/internal/models"
	"thepass/internal/scheduler"
)

const (
	serviceTickInterval = time.Second
	defaultSaveTimeout  = 5 * time.Second
	defaultNoteTimeout  = 15 * time.Second
)

// CareerStore persists the career record
type CareerStore interface {
	SaveCareer(ctx context.Context, stats models.CareerStats) bool
}

// Options configures a Machine. Zero values get sensible defaults.
type Options struct {
	Catalog   *models.RecipeCatalog
	Random    kitchen.Random
	Clock     scheduler.Clock
	Store     CareerStore
	Notes     evaluation.NoteWriter
	Annotator evaluation.Annotator
	Observers []Observer

	Career   models.CareerStats
	Settings models.Settings
	Money    int

	SaveTimeout time.Duration
	NoteTimeout time.Duration
}

// Machine is the shift state machine. Every mutation, whether from a player action or a
// timer, runs under one mutex; observers and subscribers are called after it is released.
type Machine struct {
	mu    sync.Mutex
	state State

	catalog   *models.RecipeCatalog
	rng       kitchen.Random
	clock     scheduler.Clock
	generator *kitchen.Generator
	store     CareerStore
	notes     evaluation.NoteWriter
	annotator evaluation.Annotator
	observers []Observer

	serviceClock *scheduler.Task
	printer      *scheduler.Task

	subMu   sync.RWMutex
	subs    map[int]func(State)
	nextSub int

	saveMu   sync.Mutex
	savedRev uint64

	background  sync.WaitGroup
	closed      bool
	saveTimeout time.Duration
	noteTimeout time.Duration
}

// effects are side effects collected under the lock and run once it is released
type effects struct {
	after []func()
}

func (fx *effects) add(f func()) {
	fx.after = append(fx.after, f)
}

func (fx *effects) run() {
	for _, f := range fx.after {
		f()
	}
}

// StartingMoney is the bank of a new session: the saved career money, or InitialMoney without a save
func StartingMoney(saved *models.CareerStats) int {
	if saved == nil {
		return InitialMoney
	}
	return saved.CareerMoney
}

// NewMachine creates a machine in PreShift
func NewMachine(opts Options) *Machine {
	if opts.Catalog == nil {
		opts.Catalog = models.NewRecipeCatalog()
	}
	if opts.Random == nil {
		opts.Random = kitchen.NewRandom(time.Now().UnixNano())
	}
	if opts.Clock == nil {
		opts.Clock = scheduler.RealClock{}
	}
	if opts.Notes == nil {
		opts.Notes = evaluation.NewPoolNotes(opts.Random)
	}
	if opts.Career.KitchenStaff == nil && opts.Career.UnlockedRecipes == nil {
		opts.Career = models.DefaultCareerStats()
	}
	if opts.Settings == (models.Settings{}) {
		opts.Settings = models.DefaultSettings()
	}
	if opts.SaveTimeout <= 0 {
		opts.SaveTimeout = defaultSaveTimeout
	}
	if opts.NoteTimeout <= 0 {
		opts.NoteTimeout = defaultNoteTimeout
	}

	booking := models.BookingDifficulties[opts.Random.Intn(len(models.BookingDifficulties))]

	return &Machine{
		state:        NewState(opts.Career.Clone(), opts.Settings, opts.Money, booking),
		catalog:      opts.Catalog,
		rng:          opts.Random,
		clock:        opts.Clock,
		generator:    kitchen.NewGenerator(opts.Random),
		store:        opts.Store,
		notes:        opts.Notes,
		annotator:    opts.Annotator,
		observers:    opts.Observers,
		serviceClock: scheduler.NewTask(opts.Clock),
		printer:      scheduler.NewTask(opts.Clock),
		subs:         make(map[int]func(State)),
		saveTimeout:  opts.SaveTimeout,
		noteTimeout:  opts.NoteTimeout,
	}
}

// Snapshot returns a copy of the current state
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Catalog returns the recipe catalog the machine draws tickets from
func (m *Machine) Catalog() *models.RecipeCatalog {
	return m.catalog
}

// Subscribe registers fn to receive every committed state. The State passed in is shared
// between subscribers and must be treated as read-only.
func (m *Machine) Subscribe(fn func(State)) (cancel func()) {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

// Close stops the timers and waits for background work to finish
func (m *Machine) Close() {
	m.mu.Lock()
	m.closed = true
	m.serviceClock.Stop()
	m.printer.Stop()
	m.mu.Unlock()
	m.background.Wait()
}

// Wait blocks until background work, such as note annotation, has finished
func (m *Machine) Wait() {
	m.background.Wait()
}

// do applies fn under the lock. On success it runs the end checks, brings the timers in
// line with the new state, and then, unlocked, runs side effects and publishes the state.
func (m *Machine) do(fn func(fx *effects) error) error {
	fx := &effects{}

	m.mu.Lock()
	if err := fn(fx); err != nil {
		m.mu.Unlock()
		return err
	}
	m.settle(fx)
	m.state.Revision++
	snap := m.state.Clone()
	m.mu.Unlock()

	fx.run()
	m.publish(snap)
	return nil
}

func (m *Machine) publish(s State) {
	m.subMu.RLock()
	fns := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.RUnlock()

	for _, fn := range fns {
		fn(s)
	}
}

// settle must be called with m.mu held
func (m *Machine) settle(fx *effects) {
	if status, ok := endCondition(&m.state); ok {
		m.endShift(status, fx)
	}
	m.syncTimers(fx)
}

// syncTimers arms the service timers while the shift is active and tears them down otherwise.
// Entering the active condition prints the first ticket straight away.
func (m *Machine) syncTimers(fx *effects) {
	if !m.state.Active() {
		m.serviceClock.Stop()
		m.printer.Stop()
		return
	}

	m.serviceClock.Start(serviceTickInterval, m.onServiceTick)
	if !m.printer.Running() {
		m.spawn(fx)
		m.printer.Start(m.spawnInterval(), m.onPrinterTick)
	}
}

func (m *Machine) onServiceTick(tick scheduler.Tick) time.Duration {
	var next time.Duration
	_ = m.do(func(fx *effects) error {
		if !tick.Valid() || !m.state.Active() {
			return errStaleTick
		}
		tickService(&m.state)
		next = serviceTickInterval
		return nil
	})
	return next
}

func (m *Machine) onPrinterTick(tick scheduler.Tick) time.Duration {
	var next time.Duration
	_ = m.do(func(fx *effects) error {
		if !tick.Valid() || !m.state.Active() {
			return errStaleTick
		}
		m.spawn(fx)
		next = m.spawnInterval()
		return nil
	})
	return next
}

// spawnInterval is re-evaluated on every print so the rush speeds up arrivals mid-service
func (m *Machine) spawnInterval() time.Duration {
	return SpawnInterval(m.state.CurrentPhase, m.state.BookingDifficulty, m.state.Career.AverageSpeed())
}

func (m *Machine) spawn(fx *effects) (models.Ticket, bool) {
	recipe, ok := pickRecipe(m.rng, m.catalog, m.state.SelectedMenu)
	if !ok {
		log.Printf("shift: menu recipe missing from catalog, no ticket printed")
		return models.Ticket{}, false
	}

	ticket := models.NewTicket(newTicketID(), recipe, m.state.ServiceTime)
	if enqueue(&m.state, ticket) {
		m.cookCurrent()
	}

	pending := m.state.PendingCount()
	fx.add(func() {
		for _, obs := range m.observers {
			obs.TicketSpawned(ticket, pending)
		}
	})
	return ticket, true
}

func (m *Machine) cookCurrent() {
	if m.state.CurrentTicket == nil {
		return
	}
	dish := m.generator.Generate(m.state.CurrentTicket.Recipe, m.state.CurrentPhase, m.state.Career.AverageSkill())
	m.state.CurrentDish = &dish
}

func (m *Machine) advanceQueue() {
	if dequeue(&m.state) {
		m.cookCurrent()
	}
}

func (m *Machine) endShift(status models.GameStatus, fx *effects) {
	switch status {
	case models.StatusSurvived:
		surviveShift(&m.state)
		m.queueSave(fx, nil)
	case models.StatusFired:
		fire(&m.state)
	}

	summary := m.state.ShiftSummary
	summary.RecipesUnlockedThisShift = append([]int{}, summary.RecipesUnlockedThisShift...)
	log.Printf("shift: service ended %s at %ds with reputation %.0f", status, m.state.ServiceTime, m.state.Reputation)

	fx.add(func() {
		for _, obs := range m.observers {
			obs.ShiftEnded(status, summary)
		}
	})
}

// track registers background work that Close must wait for. It must be called with m.mu held.
func (m *Machine) track() (done func()) {
	if m.closed {
		return func() {}
	}
	m.background.Add(1)
	return m.background.Done
}

// queueSave snapshots the career and writes it once the lock is released. It must be
// called with m.mu held. The snapshot is stamped with the revision being committed.
func (m *Machine) queueSave(fx *effects, saved *bool) {
	rev := m.state.Revision + 1
	stats := m.state.Career.Clone()
	done := m.track()
	fx.add(func() {
		defer done()
		ok := m.persist(rev, stats)
		if saved != nil {
			*saved = ok
		}
	})
}

// persist writes saves one at a time. A snapshot older than the last one written is dropped.
func (m *Machine) persist(rev uint64, stats models.CareerStats) bool {
	if m.store == nil {
		return false
	}
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	if rev <= m.savedRev {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
	defer cancel()
	if !m.store.SaveCareer(ctx, stats) {
		log.Println("shift: career save failed, keeping in-memory career")
		return false
	}
	m.savedRev = rev
	return true
}

// StartShift opens service
func (m *Machine) StartShift() error {
	return m.do(func(fx *effects) error {
		if m.state.ShiftPhase != models.ShiftPreShift {
			return ErrWrongPhase
		}
		startShift(&m.state)
		log.Printf("shift: service %d open, booking %s", m.state.Career.CurrentShiftNumber, m.state.BookingDifficulty)
		return nil
	})
}

// Pause freezes service; timers are cancelled until Resume
func (m *Machine) Pause() error {
	return m.do(func(fx *effects) error {
		if !m.state.Active() {
			return ErrNotInService
		}
		m.state.GameStatus = models.StatusPaused
		return nil
	})
}

// Resume continues a paused service
func (m *Machine) Resume() error {
	return m.do(func(fx *effects) error {
		if m.state.ShiftPhase != models.ShiftService || m.state.GameStatus != models.StatusPaused {
			return ErrWrongPhase
		}
		m.state.GameStatus = models.StatusPlaying
		return nil
	})
}

// AdvanceShift moves from the post-shift report to the next PreShift with a new booking
func (m *Machine) AdvanceShift() error {
	return m.do(func(fx *effects) error {
		if m.state.ShiftPhase != models.ShiftPostShift {
			return ErrWrongPhase
		}
		booking := models.BookingDifficulties[m.rng.Intn(len(models.BookingDifficulties))]
		advanceShift(&m.state, booking)
		return nil
	})
}

// Restart returns a fired player to PreShift
func (m *Machine) Restart() error {
	return m.do(func(fx *effects) error {
		if m.state.GameStatus != models.StatusFired {
			return ErrWrongPhase
		}
		restart(&m.state)
		return nil
	})
}

// SelectMenu sets the recipes tickets are drawn from. Duplicates are dropped.
func (m *Machine) SelectMenu(ids []int) error {
	return m.do(func(fx *effects) error {
		if m.state.ShiftPhase == models.ShiftService {
			return ErrWrongPhase
		}
		menu, err := validateMenu(ids, m.catalog, m.state.Career)
		if err != nil {
			return err
		}
		m.state.SelectedMenu = menu
		return nil
	})
}

// AddTicket prints a ticket immediately, outside the printer schedule
func (m *Machine) AddTicket() (models.Ticket, error) {
	var ticket models.Ticket
	err := m.do(func(fx *effects) error {
		if !m.state.Active() {
			return ErrNotInService
		}
		t, ok := m.spawn(fx)
		if !ok {
			return ErrUnknownRecipe
		}
		ticket = t
		return nil
	})
	return ticket, err
}

// AdjustReputation changes reputation, clamped to 0..100
func (m *Machine) AdjustReputation(delta float64) {
	_ = m.do(func(fx *effects) error {
		adjustReputation(&m.state, delta)
		return nil
	})
}

// AdjustMoney changes the bank; money may go negative
func (m *Machine) AdjustMoney(delta int) {
	_ = m.do(func(fx *effects) error {
		m.state.Money += delta
		return nil
	})
}

// UpdateSettings replaces the session preferences
func (m *Machine) UpdateSettings(settings models.Settings) error {
	if err := models.ValidateSettings(&settings); err != nil {
		return err
	}
	return m.do(func(fx *effects) error {
		m.state.Settings = settings
		return nil
	})
}

// ResetCareer wipes the saved career through wipe and, only once that succeeds, replaces
// the career in memory with a fresh one. Saves still in flight cannot bring the old career back.
func (m *Machine) ResetCareer(wipe func() bool) error {
	return m.do(func(fx *effects) error {
		if m.state.ShiftPhase == models.ShiftService && m.state.GameStatus != models.StatusFired {
			return ErrWrongPhase
		}
		if wipe != nil {
			m.saveMu.Lock()
			ok := wipe()
			if ok {
				m.savedRev = m.state.Revision + 1
			}
			m.saveMu.Unlock()
			if !ok {
				return ErrSaveNotCleared
			}
		}
		fresh := models.DefaultCareerStats()
		m.state.Career = fresh
		m.state.Money = fresh.CareerMoney
		m.state.SelectedMenu = []int{}
		restart(&m.state)
		return nil
	})
}

// StaffQuip returns a line from the brigade; a long queue makes them panic
func (m *Machine) StaffQuip() kitchen.Quip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return kitchen.NextQuip(m.rng, m.state.PendingCount())
}
