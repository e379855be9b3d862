package library

import (
	"errors"
	"fmt"
	"time"

	"pedal-librarian/debug"
	"pedal-librarian/pedal"
)

var (
	ErrNoBank          = errors.New("library: pedal has no addressable memory")
	ErrSlotOutOfRange  = errors.New("library: slot outside the pedal's range")
	ErrProfileMismatch = errors.New("library: preset belongs to a different pedal type")
)

// Device is the slice of a live session that bank operations need.
type Device interface {
	ProfileType() string
	SelectSlot(slot uint8) error
	SaveTrigger() error
	LoadPreset(state pedal.ParamState, id, name string, push bool) error
}

// ConflictError reports that a slot already holds a different preset.
// Callers resolve it by retrying with confirm set.
type ConflictError struct {
	Slot     uint8
	Label    string
	Existing *Preset
	Incoming string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s already holds %q", e.Label, e.Existing.Name)
}

// SlotError is one slot's failure during a multi-slot sync.
type SlotError struct {
	Slot uint8
	Err  error
}

func (e SlotError) Error() string {
	return fmt.Sprintf("slot %d: %v", e.Slot, e.Err)
}

// PartialSyncError reports a resync that landed some slots and not others.
type PartialSyncError struct {
	Synced []uint8
	Failed []SlotError
}

func (e *PartialSyncError) Error() string {
	return fmt.Sprintf("synced %d slots, %d failed", len(e.Synced), len(e.Failed))
}

// SaveResult describes a completed save-to-slot. Instructions is set for
// pedals where the final commit is a physical gesture.
type SaveResult struct {
	Slot         uint8
	Label        string
	Replaced     *Preset
	Instructions string
}

// SlotView is one bank slot as shown to the user. Preset is nil for empty
// slots; an assignment whose preset no longer exists also reads as empty.
type SlotView struct {
	Slot     uint8
	Label    string
	Color    string
	Preset   *Preset
	SyncedAt time.Time
}

// Banks drives a pedal's memory slots: assigning library presets to slots,
// pushing them over the wire, and reconciling what the library believes
// with what the hardware holds.
type Banks struct {
	store    Store
	registry *pedal.Registry
}

func NewBanks(store Store, registry *pedal.Registry) *Banks {
	return &Banks{store: store, registry: registry}
}

func (b *Banks) bankFor(profileType string) (*pedal.BankConfig, error) {
	p, ok := b.registry.Lookup(profileType)
	if !ok {
		return nil, fmt.Errorf("library: unknown pedal type %q", profileType)
	}
	if p.Bank == nil {
		return nil, ErrNoBank
	}
	return p.Bank, nil
}

// State lists every slot of the pedal's bank in order.
func (b *Banks) State(profileType string) ([]SlotView, error) {
	bank, err := b.bankFor(profileType)
	if err != nil {
		return nil, err
	}
	assigned, err := b.store.Assignments(profileType)
	if err != nil {
		return nil, err
	}

	views := make([]SlotView, 0, bank.TotalSlots())
	for slot := bank.SlotStart; ; slot++ {
		view := SlotView{
			Slot:  slot,
			Label: bank.FormatSlot(slot),
			Color: bank.SlotColor(slot),
		}
		if a, ok := assigned[slot]; ok {
			preset, err := b.store.FindPreset(a.PresetID)
			switch {
			case errors.Is(err, ErrPresetNotFound):
				// deleted preset; the slot reads as empty
			case err != nil:
				return nil, err
			default:
				view.Preset = preset
				view.SyncedAt = a.SyncedAt
			}
		}
		views = append(views, view)
		if slot == bank.SlotEnd {
			break
		}
	}
	return views, nil
}

// SaveToSlot writes a library preset into one of the pedal's memory slots
// and records the assignment. A slot already holding a different preset
// returns *ConflictError until the caller confirms the overwrite.
func (b *Banks) SaveToSlot(dev Device, presetID string, slot uint8, confirm bool) (*SaveResult, error) {
	bank, err := b.bankFor(dev.ProfileType())
	if err != nil {
		return nil, err
	}
	if !bank.Contains(slot) {
		return nil, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}

	preset, err := b.store.FindPreset(presetID)
	if err != nil {
		return nil, err
	}
	if preset.ProfileType != dev.ProfileType() {
		return nil, fmt.Errorf("%w: preset %q is for %s", ErrProfileMismatch, preset.Name, preset.ProfileType)
	}

	assigned, err := b.store.Assignments(dev.ProfileType())
	if err != nil {
		return nil, err
	}
	label := bank.FormatSlot(slot)
	var replaced *Preset
	if a, ok := assigned[slot]; ok && a.PresetID != presetID {
		existing, err := b.store.FindPreset(a.PresetID)
		if err == nil {
			if !confirm {
				return nil, &ConflictError{Slot: slot, Label: label, Existing: existing, Incoming: preset.Name}
			}
			replaced = existing
		}
		// an assignment to a deleted preset never blocks
	}

	result := &SaveResult{Slot: slot, Label: label, Replaced: replaced}
	switch bank.Save {
	case pedal.SaveSupported:
		if err := b.writeSlot(dev, bank, preset, slot, true); err != nil {
			return nil, err
		}
	case pedal.SaveManualOnly:
		if err := b.writeSlot(dev, bank, preset, slot, false); err != nil {
			return nil, err
		}
		result.Instructions = bank.SaveHint
	case pedal.SaveAuto:
		if err := b.writeSlot(dev, bank, preset, slot, false); err != nil {
			return nil, err
		}
	}

	if err := b.store.Assign(Assignment{
		ProfileType: dev.ProfileType(),
		Slot:        slot,
		PresetID:    presetID,
		SyncedAt:    time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	debug.Log("library", "saved %q to %s slot %s", preset.Name, dev.ProfileType(), label)
	return result, nil
}

// writeSlot addresses the slot, pushes the preset's full state, and fires
// the wire-based save when the pedal has one.
func (b *Banks) writeSlot(dev Device, bank *pedal.BankConfig, preset *Preset, slot uint8, fireSave bool) error {
	if err := dev.SelectSlot(slot); err != nil {
		return err
	}
	if err := dev.LoadPreset(preset.Parameters, preset.ID, preset.Name, true); err != nil {
		return err
	}
	if fireSave {
		return dev.SaveTrigger()
	}
	return nil
}

// RecallSlot addresses a slot on the pedal and mirrors the assigned preset
// into the live session. The pedal loads the slot itself, so nothing is
// pushed; a slot with no usable assignment is still selected.
func (b *Banks) RecallSlot(dev Device, slot uint8) (*Preset, error) {
	bank, err := b.bankFor(dev.ProfileType())
	if err != nil {
		return nil, err
	}
	if !bank.Contains(slot) {
		return nil, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	if err := dev.SelectSlot(slot); err != nil {
		return nil, err
	}

	assigned, err := b.store.Assignments(dev.ProfileType())
	if err != nil {
		return nil, err
	}
	a, ok := assigned[slot]
	if !ok {
		return nil, nil
	}
	preset, err := b.store.FindPreset(a.PresetID)
	if errors.Is(err, ErrPresetNotFound) {
		debug.Log("library", "slot %d assignment points at a deleted preset", slot)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := dev.LoadPreset(preset.Parameters, preset.ID, preset.Name, false); err != nil {
		return nil, err
	}
	return preset, nil
}

// RecallPreset pushes a library preset straight into the live session and
// out to the pedal, without involving any memory slot.
func (b *Banks) RecallPreset(dev Device, presetID string) (*Preset, error) {
	preset, err := b.store.FindPreset(presetID)
	if err != nil {
		return nil, err
	}
	if preset.ProfileType != dev.ProfileType() {
		return nil, fmt.Errorf("%w: preset %q is for %s", ErrProfileMismatch, preset.Name, preset.ProfileType)
	}
	if err := dev.LoadPreset(preset.Parameters, preset.ID, preset.Name, true); err != nil {
		return nil, err
	}
	return preset, nil
}

// Resync rewrites every assigned slot to the pedal. One slot failing does
// not stop the rest; a mixed outcome comes back as *PartialSyncError.
func (b *Banks) Resync(dev Device) error {
	bank, err := b.bankFor(dev.ProfileType())
	if err != nil {
		return err
	}
	assigned, err := b.store.Assignments(dev.ProfileType())
	if err != nil {
		return err
	}

	var synced []uint8
	var failed []SlotError
	for slot := bank.SlotStart; ; slot++ {
		a, ok := assigned[slot]
		if ok {
			err := b.resyncSlot(dev, bank, a)
			switch {
			case errors.Is(err, ErrPresetNotFound):
				// dangling assignment, nothing to push
			case err != nil:
				failed = append(failed, SlotError{Slot: slot, Err: err})
			default:
				synced = append(synced, slot)
			}
		}
		if slot == bank.SlotEnd {
			break
		}
	}

	if len(failed) > 0 {
		return &PartialSyncError{Synced: synced, Failed: failed}
	}
	debug.Log("library", "resynced %d slots to %s", len(synced), dev.ProfileType())
	return nil
}

// UpdatePreset persists a preset's new parameters and rewrites every slot
// currently assigned to it, so no slot is left holding the old state. As
// with Resync, per-slot failures are collected rather than aborting.
func (b *Banks) UpdatePreset(dev Device, preset *Preset) error {
	if preset.ProfileType != dev.ProfileType() {
		return fmt.Errorf("%w: preset %q is for %s", ErrProfileMismatch, preset.Name, preset.ProfileType)
	}
	if err := b.store.SavePreset(preset); err != nil {
		return err
	}
	bank, err := b.bankFor(dev.ProfileType())
	if errors.Is(err, ErrNoBank) {
		return nil
	}
	if err != nil {
		return err
	}
	assigned, err := b.store.Assignments(dev.ProfileType())
	if err != nil {
		return err
	}

	var synced []uint8
	var failed []SlotError
	for slot := bank.SlotStart; ; slot++ {
		if a, ok := assigned[slot]; ok && a.PresetID == preset.ID {
			if err := b.resyncSlot(dev, bank, a); err != nil {
				failed = append(failed, SlotError{Slot: slot, Err: err})
			} else {
				synced = append(synced, slot)
			}
		}
		if slot == bank.SlotEnd {
			break
		}
	}
	if len(failed) > 0 {
		return &PartialSyncError{Synced: synced, Failed: failed}
	}
	return nil
}

func (b *Banks) resyncSlot(dev Device, bank *pedal.BankConfig, a Assignment) error {
	preset, err := b.store.FindPreset(a.PresetID)
	if err != nil {
		return err
	}
	if err := b.writeSlot(dev, bank, preset, a.Slot, bank.Save == pedal.SaveSupported); err != nil {
		return err
	}
	a.SyncedAt = time.Now().UTC()
	return b.store.Assign(a)
}

// Unassign removes a slot's assignment. The pedal's memory is untouched.
func (b *Banks) Unassign(profileType string, slot uint8) error {
	bank, err := b.bankFor(profileType)
	if err != nil {
		return err
	}
	if !bank.Contains(slot) {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	return b.store.ClearSlot(profileType, slot)
}
