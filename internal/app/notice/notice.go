package notice

import (
	"errors"

	"villagetick/internal/app/ports"
	"villagetick/internal/domain/catalog"
	"villagetick/internal/domain/economy"
	"villagetick/internal/domain/timed"
	"villagetick/internal/domain/travel"
	"villagetick/internal/domain/world"
)

type Result string

const (
	ResultSuccess Result = "success"
	ResultError   Result = "error"
)

// Notice is the user-facing outcome of an operation.
type Notice struct {
	Result  Result `json:"result"`
	Message string `json:"message"`
}

func Success(message string) Notice {
	return Notice{Result: ResultSuccess, Message: message}
}

func Error(message string) Notice {
	return Notice{Result: ResultError, Message: message}
}

var messages = []struct {
	err     error
	message string
}{
	{ports.ErrVillageNotFound, "Village not found."},
	{ports.ErrJobNotFound, "Job not found."},
	{ports.ErrMovementNotFound, "Movement not found."},
	{ports.ErrNotFound, "Record not found."},
	{ports.ErrConflict, "The village changed in the meantime, please retry."},
	{economy.ErrInsufficientResources, "Not enough resources."},
	{catalog.ErrUnknownBuilding, "Unknown building."},
	{catalog.ErrUnknownUnit, "Unknown unit."},
	{catalog.ErrMaxLevel, "Building is already at max level."},
	{catalog.ErrResearchRequired, "This unit has to be researched first."},
	{catalog.ErrAlreadyResearched, "Nothing left to research for this unit."},
	{catalog.ErrBuildingRequired, "A required building is missing."},
	{world.ErrInvalidQuantity, "Quantity must be at least 1."},
	{world.ErrNotEnoughTroops, "Not enough troops in the village."},
	{world.ErrUnknownJobKind, "Unknown job kind."},
	{timed.ErrInvalidTransition, "This job cannot be changed in its current state."},
	{timed.ErrQueueBusy, "Another job of this kind is already running."},
	{travel.ErrNoUnits, "Select at least one unit."},
	{travel.ErrInvalidSpeed, "Selected units cannot travel."},
	{travel.ErrSameVillage, "Troops cannot be sent to their own village."},
	{travel.ErrNotTravelling, "The movement can no longer be cancelled."},
}

// FromError maps a known error to a user-visible message. ok is false for
// errors that should not be shown to users verbatim.
func FromError(err error) (Notice, bool) {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return Error(m.message), true
		}
	}
	return Error("Something went wrong."), false
}
