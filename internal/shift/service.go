package shift

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/google/uuid"

	"thepass/internal/evaluation"
	"thepass/internal/kitchen"
	"thepass/internal/models"
)

const (
	acceptableRepPenalty = 3
	// successQuipChance is the odds the brigade cheers a plate on its way out
	successQuipChance = 0.3
)

var errEntryGone = errors.New("service log entry no longer present")

// ServeResult describes a dish sent to the dining room
type ServeResult struct {
	Entry           models.ServiceLogEntry  `json:"entry"`
	Evaluation      models.EvaluationResult `json:"evaluation"`
	PrepSeconds     float64                 `json:"prepSeconds"`
	TargetSeconds   float64                 `json:"targetSeconds"`
	ReputationDelta float64                 `json:"reputationDelta"`
	Unlocked        bool                    `json:"unlocked"`
	Quip            *kitchen.Quip           `json:"quip,omitempty"`
}

// RejectResult describes a dish sent back from the pass
type RejectResult struct {
	Evaluation models.EvaluationResult `json:"evaluation"`
	Correct    bool                    `json:"correct"`
	MoneyLost  int                     `json:"moneyLost"`
}

func (m *Machine) accuracyRequirement() float64 {
	if m.state.Settings.AccuracyRequirement <= 0 {
		return evaluation.DefaultAccuracyRequirement
	}
	return m.state.Settings.AccuracyRequirement
}

func (m *Machine) prepMultiplier() float64 {
	if m.state.Settings.PrepTimeMultiplier <= 0 {
		return 1
	}
	return m.state.Settings.PrepTimeMultiplier
}

func (m *Machine) requireDish() error {
	if !m.state.Active() {
		return ErrNotInService
	}
	if m.state.CurrentTicket == nil || m.state.CurrentDish == nil {
		return ErrNoActiveTicket
	}
	return nil
}

// Serve sends the dish at the pass to the dining room. The dish is graded, logged and paid
// for, reputation moves with its quality, and the next ticket comes up.
func (m *Machine) Serve() (ServeResult, error) {
	var res ServeResult
	err := m.do(func(fx *effects) error {
		if err := m.requireDish(); err != nil {
			return err
		}
		recipe := m.state.CurrentTicket.Recipe
		dish := *m.state.CurrentDish
		failures := m.state.TicketFailures

		requirement := m.accuracyRequirement()
		eval := evaluation.EvaluateDish(dish, recipe, requirement)
		prep := float64(m.state.ServiceTime - m.state.TicketStartTime)
		target := float64(recipe.EffectivePrepTime()) * m.prepMultiplier()
		difficulty := evaluation.GradingDifficultyFor(requirement)
		grade := evaluation.GradeService(eval.NormalizedScore, prep, target, failures, difficulty)
		profit := evaluation.CalculateProfit(recipe.BaseCost, eval.NormalizedScore, grade, failures)

		entry := models.ServiceLogEntry{
			ID:         uuid.NewString(),
			DishName:   recipe.Name,
			Grade:      grade,
			ProfitLoss: profit,
			Note:       m.notes.Note(grade, recipe.Name),
			Timestamp:  m.state.ServiceTime,
		}
		recordService(&m.state, entry, eval.NormalizedScore)

		var delta float64
		unlocked := false
		switch {
		case eval.IsPerfect:
			delta = recipe.BaseRepValue
			unlocked = unlockRecipe(&m.state, recipe.ID)
		case eval.IsAcceptable:
			delta = -acceptableRepPenalty
		default:
			delta = -math.Floor(math.Abs(float64(eval.Score)) / 2)
		}
		adjustReputation(&m.state, delta)
		m.advanceQueue()

		var quip *kitchen.Quip
		if m.rng.Float64() < successQuipChance {
			q := kitchen.SuccessQuip(m.rng)
			quip = &q
		}

		res = ServeResult{
			Entry:           entry,
			Evaluation:      eval,
			PrepSeconds:     prep,
			TargetSeconds:   target,
			ReputationDelta: delta,
			Unlocked:        unlocked,
			Quip:            quip,
		}

		fx.add(func() {
			for _, obs := range m.observers {
				obs.DishServed(entry, recipe, prep, eval.NormalizedScore)
			}
		})
		if m.annotator != nil {
			issues := eval.Issues
			done := m.track()
			fx.add(func() { m.annotate(entry, issues, done) })
		}
		return nil
	})
	return res, err
}

// Reject sends the dish back. Rejecting a dish that was good enough to serve wastes its
// ingredients. Either way the ticket is handled and the next one comes up.
func (m *Machine) Reject() (RejectResult, error) {
	var res RejectResult
	err := m.do(func(fx *effects) error {
		if err := m.requireDish(); err != nil {
			return err
		}
		recipe := m.state.CurrentTicket.Recipe
		eval := evaluation.EvaluateDish(*m.state.CurrentDish, recipe, m.accuracyRequirement())

		correct := !(eval.IsPerfect || eval.IsAcceptable)
		lost := 0
		if !correct {
			lost = int(math.Round(recipe.BaseCost))
			wasteFood(&m.state, lost)
		}
		m.state.TicketsServed++
		m.advanceQueue()

		res = RejectResult{Evaluation: eval, Correct: correct, MoneyLost: lost}
		fx.add(func() {
			for _, obs := range m.observers {
				obs.DishRejected(recipe, correct)
			}
		})
		return nil
	})
	return res, err
}

// Refire sends the dish back to the line to be cooked again for the same ticket.
// The prep clock keeps running and every refire counts against the grade.
func (m *Machine) Refire() (models.Dish, error) {
	var dish models.Dish
	err := m.do(func(fx *effects) error {
		if err := m.requireDish(); err != nil {
			return err
		}
		m.state.TicketFailures++
		m.cookCurrent()
		dish = *m.state.CurrentDish
		return nil
	})
	return dish, err
}

// annotate asks the annotator for a richer note and swaps it into the service log.
// The pool note stays when the annotator fails or the entry has been cleared.
func (m *Machine) annotate(entry models.ServiceLogEntry, issues []string, done func()) {
	go func() {
		defer done()

		ctx, cancel := context.WithTimeout(context.Background(), m.noteTimeout)
		defer cancel()

		note, err := m.annotator.Annotate(ctx, entry, issues)
		if err != nil {
			log.Printf("shift: keeping pool note for %s: %v", entry.DishName, err)
			return
		}

		_ = m.do(func(fx *effects) error {
			for i := range m.state.ServiceLog {
				if m.state.ServiceLog[i].ID == entry.ID {
					m.state.ServiceLog[i].Note = note
					return nil
				}
			}
			return errEntryGone
		})
	}()
}
