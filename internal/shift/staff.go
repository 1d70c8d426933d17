package shift

import (
	"thepass/internal/career"
	"thepass/internal/models"
)

// UpgradeResult reports a staff upgrade and whether it reached durable storage
type UpgradeResult struct {
	Station string       `json:"station"`
	Staff   models.Staff `json:"staff"`
	Cost    int          `json:"cost"`
	Saved   bool         `json:"saved"`
}

// TrainStaff raises a station's skill. Not available during service.
func (m *Machine) TrainStaff(station string) (UpgradeResult, error) {
	return m.upgradeStaff(station, career.TrainCost, career.Train)
}

// HireStaff raises a station's speed. Not available during service.
func (m *Machine) HireStaff(station string) (UpgradeResult, error) {
	return m.upgradeStaff(station, career.HireCost, career.Hire)
}

func (m *Machine) upgradeStaff(station string, cost int, apply func(models.CareerStats, string, int) (models.CareerStats, error)) (UpgradeResult, error) {
	res := UpgradeResult{Station: station, Cost: cost}
	err := m.do(func(fx *effects) error {
		if m.state.ShiftPhase == models.ShiftService {
			return ErrWrongPhase
		}
		updated, err := apply(m.state.Career, station, m.state.Money)
		if err != nil {
			return err
		}
		m.state.Career = updated
		m.state.Money -= cost
		res.Staff = updated.KitchenStaff[station]
		m.queueSave(fx, &res.Saved)
		return nil
	})
	return res, err
}
