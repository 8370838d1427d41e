package app

import (
	"context"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// QnaUseCase is the engine the presentation layer drives.
type QnaUseCase interface {
	Open(ctx context.Context, subgoalID string) (*domain.QnaSnapshot, error)
	Ask(ctx context.Context, subgoalID, question string) (*domain.QnaSnapshot, error)
}

// QnaPresenter displays Q&A snapshots. PresentInitial receives the history
// when a conversation is opened; PresentUpdate receives it after each answer.
type QnaPresenter interface {
	PresentInitial(snap domain.QnaSnapshot)
	PresentUpdate(snap domain.QnaSnapshot)
}
